package model

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"
)

type Pet struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Breed       string         `gorm:"size:100;not null;index" json:"breed"`
	Species     string         `gorm:"size:100" json:"species"`
	Weight      float64        `json:"weight"`
	Sex         string         `gorm:"size:10" json:"sex"`
	DOB         *time.Time     `gorm:"type:date" json:"dob,omitempty"`
	Description string         `gorm:"type:text" json:"description"`
	Adopted     bool           `gorm:"default:false;index" json:"adopted"`
	ForAdoption bool           `gorm:"default:false;index" json:"for_adoption"`
	OwnerID     *uint          `gorm:"index" json:"owner_id,omitempty"`
	PhotoBlob   []byte         `gorm:"type:bytea" json:"-"`
	PhotoMime   string         `gorm:"size:50" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Owner         *User          `gorm:"foreignKey:OwnerID" json:"-"`
	Vaccines      []Vaccine      `gorm:"foreignKey:PetID" json:"vaccines,omitempty"`
	Consultations []Consultation `gorm:"foreignKey:PetID" json:"consultations,omitempty"`
}

func (Pet) TableName() string {
	return "pets"
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// SetPhoto stores photo bytes gzip-compressed alongside their mime type.
func (p *Pet) SetPhoto(raw []byte, mime string) error {
	if len(raw) == 0 {
		p.PhotoBlob = nil
		p.PhotoMime = ""
		return nil
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	p.PhotoBlob = buf.Bytes()
	if mime == "" {
		mime = "image/jpeg"
	}
	if len(mime) > 50 {
		mime = mime[:50]
	}
	p.PhotoMime = mime
	return nil
}

// PhotoBytes returns the decompressed photo bytes. Rows written before
// compression was introduced are returned as-is.
func (p *Pet) PhotoBytes() ([]byte, error) {
	if len(p.PhotoBlob) == 0 {
		return nil, nil
	}
	if !isGzip(p.PhotoBlob) {
		return p.PhotoBlob, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(p.PhotoBlob))
	if err != nil {
		return p.PhotoBlob, nil
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// PhotoDataURL renders the photo as a data URL for <img src>, or "" if unset.
func (p *Pet) PhotoDataURL() string {
	raw, err := p.PhotoBytes()
	if err != nil || len(raw) == 0 {
		return ""
	}
	mime := p.PhotoMime
	if mime == "" {
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(raw))
}
