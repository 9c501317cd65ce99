package http

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type AddAdminRequest struct {
	Principal string `json:"principal" validate:"required"`
}

type RemoveAdminRequest struct {
	Principal string `json:"principal" validate:"required"`
}

type GrantUserRoleRequest struct {
	Principal string `json:"principal" validate:"required"`
}

type RevokeUserRoleRequest struct {
	Principal string `json:"principal" validate:"required"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" validate:"required"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

type AdminCheckResponse struct {
	Principal string `json:"principal"`
	Admin     bool   `json:"admin"`
}

type RoleCheckResponse struct {
	Principal string `json:"principal"`
	HasRole   bool   `json:"has_role"`
}

type AuthorizationResponse struct {
	Principal  string `json:"principal"`
	Authorized bool   `json:"authorized"`
}

type RoleResponse struct {
	Principal string `json:"principal"`
	Role      string `json:"role,omitempty"`
	Found     bool   `json:"found"`
}

type AdminListResponse struct {
	Admins []string `json:"admins"`
}

type AuditEntryItem struct {
	AuditID    string `json:"audit_id"`
	Action     string `json:"action"`
	Actor      string `json:"actor"`
	Subject    string `json:"subject"`
	OccurredAt string `json:"occurred_at"`
}

type AuditTrailResponse struct {
	Items []AuditEntryItem `json:"items"`
}
