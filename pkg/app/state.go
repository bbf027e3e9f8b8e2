package app

import (
	"encoding/json"
	"fmt"

	"github.com/withgalaxy/trackly/pkg/config"
)

// Keys of the shared application store.
const (
	KeyCurrentUser      = "currentUser"
	KeySidebarCollapsed = "sidebarCollapsed"
	KeyActiveProject    = "activeProject"
	KeyTheme            = "theme"
	KeyPage             = "page"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InitialState seeds the application store.
func InitialState(cfg config.AppConfig) map[string]any {
	return map[string]any{
		KeyCurrentUser:      nil,
		KeySidebarCollapsed: cfg.SidebarCollapsed,
		KeyActiveProject:    nil,
		KeyTheme:            string(cfg.Theme),
		KeyPage:             "",
	}
}

// decodeUser turns a stored user back into *User. A persisted snapshot holds
// the user as a JSON object, which comes back as a generic map.
func decodeUser(v any) (*User, error) {
	switch u := v.(type) {
	case nil:
		return nil, nil
	case *User:
		return u, nil
	case User:
		return &u, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
