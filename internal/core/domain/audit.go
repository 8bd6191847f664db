package domain

import "time"

// AuditType identifies what happened in an audit event.
type AuditType string

const (
	AuditLogin         AuditType = "auth.login"
	AuditLoginFailed   AuditType = "auth.login_failed"
	AuditRegister      AuditType = "auth.register"
	AuditAccessDenied  AuditType = "authz.access_denied"
	AuditUserCreated   AuditType = "user.created"
	AuditRoleChanged   AuditType = "user.role_changed"
	AuditActiveChanged AuditType = "user.active_changed"
)

// AuditEvent is an append-only record of a security-relevant action.
// Username is the subject the event is about; Actor is who performed it
// when that differs (admin operations).
type AuditEvent struct {
	ID         string            `json:"id"`
	Type       AuditType         `json:"type"`
	Username   string            `json:"username"`
	Actor      string            `json:"actor,omitempty"`
	RemoteAddr string            `json:"remote_addr,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// AuditFilter narrows an audit listing.
type AuditFilter struct {
	Username string
	Type     AuditType
	Page     Page
}
