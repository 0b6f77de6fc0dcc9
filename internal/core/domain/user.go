package domain

import "time"

// Role is the coarse access tier assigned to a user by the backend.
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePower    Role = "power"
	RoleOperator Role = "operator"
	RoleReader   Role = "reader"
)

// Capability identifies a single feature the backend has granted to a user.
// Checks must go through User.HasCapability so authorization decisions stay
// in one place instead of scattered boolean-field tests.
type Capability string

const (
	CapManageUsers      Capability = "manage_users"
	CapUseLLM           Capability = "use_llm"
	CapCreateDashboards Capability = "create_dashboards"
	CapUploadCSV        Capability = "upload_csv"
	CapConfigureSystem  Capability = "configure_system"
)

// ProfilePhoto is optional photo metadata attached to a user profile.
type ProfilePhoto struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	UpdatedAt   int64  `json:"updated_at,omitempty"`
}

// User is the server-issued profile of the authenticated analyst. It is
// replaced wholesale on every successful login or session refresh and never
// partially mutated on the gateway side.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     Role   `json:"role"`

	CanManageUsers      bool `json:"can_manage_users"`
	CanUseLLM           bool `json:"can_use_llm"`
	CanCreateDashboards bool `json:"can_create_dashboards"`
	CanUploadCSV        bool `json:"can_upload_csv"`
	CanConfigureSystem  bool `json:"can_configure_system"`

	// HasIndexRestrictions narrows which data indices the backend will serve
	// to this user. The gateway only forwards it; enforcement is upstream.
	HasIndexRestrictions bool `json:"has_index_restrictions"`

	IsActive    bool `json:"is_active"`
	IsSuperuser bool `json:"is_superuser"`

	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Photo     *ProfilePhoto `json:"profile_photo,omitempty"`
}

// HasCapability reports whether the user holds the given capability.
// Superusers implicitly hold every capability.
func (u *User) HasCapability(c Capability) bool {
	if u == nil {
		return false
	}
	if u.IsSuperuser {
		return true
	}
	switch c {
	case CapManageUsers:
		return u.CanManageUsers
	case CapUseLLM:
		return u.CanUseLLM
	case CapCreateDashboards:
		return u.CanCreateDashboards
	case CapUploadCSV:
		return u.CanUploadCSV
	case CapConfigureSystem:
		return u.CanConfigureSystem
	default:
		return false
	}
}
