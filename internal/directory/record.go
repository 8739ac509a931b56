package directory

import (
	"log/slog"
	"strings"
	"time"
)

// Record is a normalized point-in-time snapshot of one directory user.
// Records are produced fresh on every fetch and are never persisted as-is.
type Record struct {
	// ID is the provider-assigned external identifier
	ID string

	// DisplayName is the user's display name
	DisplayName string

	// Mail is the user's primary email address
	Mail string

	// UserPrincipalName is the user's sign-in principal name
	UserPrincipalName string

	// JobTitle is the user's job title
	JobTitle string

	// Department is the organizational-unit attribute used for eligibility
	Department string

	// AccountEnabled reports whether the account is enabled in the directory
	AccountEnabled bool

	// CreatedDateTime is when the user was created in the directory
	CreatedDateTime time.Time
}

// graphUser mirrors the field projection requested from the user listing endpoint.
type graphUser struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
	JobTitle          string `json:"jobTitle"`
	Department        string `json:"department"`
	AccountEnabled    bool   `json:"accountEnabled"`
	CreatedDateTime   string `json:"createdDateTime"`
}

// normalize converts a raw provider user into a Record, trimming whitespace
// from every string attribute.
func (u *graphUser) normalize() Record {
	var created time.Time
	if u.CreatedDateTime != "" {
		var err error
		created, err = time.Parse(time.RFC3339, u.CreatedDateTime)
		if err != nil {
			slog.Debug("Discarding unparseable createdDateTime",
				"external_id", u.ID,
				"value", u.CreatedDateTime)
		}
	}

	return Record{
		ID:                strings.TrimSpace(u.ID),
		DisplayName:       strings.TrimSpace(u.DisplayName),
		Mail:              strings.TrimSpace(u.Mail),
		UserPrincipalName: strings.TrimSpace(u.UserPrincipalName),
		JobTitle:          strings.TrimSpace(u.JobTitle),
		Department:        strings.TrimSpace(u.Department),
		AccountEnabled:    u.AccountEnabled,
		CreatedDateTime:   created,
	}
}
