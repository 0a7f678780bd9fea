package errors

// Error code constants returned in JSON error responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps codes to messages.

const (
	// Authentication
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailExists        = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// Authorization
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// Validation
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationInvalidStatus = "VALIDATION_INVALID_STATUS"
	ValidationPastDate      = "VALIDATION_PAST_DATE"

	// Resources
	ResourceNotFound = "RESOURCE_NOT_FOUND"

	// Cart / checkout
	CartEmptyCart          = "CART_EMPTY"
	CartInvalidMode        = "CART_INVALID_MODE"
	CartProductUnavailable = "CART_PRODUCT_UNAVAILABLE"
	OrderInsufficientStock = "ORDER_INSUFFICIENT_STOCK"
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"

	// Scheduling / clinical
	SchedulingInvalidService = "SCHEDULING_INVALID_SERVICE"
	SchedulingPetMismatch    = "SCHEDULING_PET_MISMATCH"
	PetNotOwned              = "PET_NOT_OWNED"
	AdoptionNotAvailable     = "ADOPTION_NOT_AVAILABLE"

	// Internal
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
