// Package auth manages the portal session flags: who is logged in, their
// role, and which portal they belong to. The flags are persisted together
// and cleared together.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/vinhuni-its/ragbot/internal/file"
)

// Roles.
const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
)

// Portals.
const (
	PortalMain      = "portal"
	PortalElearning = "elearning"
)

// DefaultSessionPath is where the CLI persists its portal session flags.
const DefaultSessionPath = "~/.ragbot/session.json"

// ErrNotLoggedIn is returned when no session flags are present.
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the set of portal flags stored after a successful login.
type Session struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Portal   string `json:"portal"`

	path string
}

// IsAdmin reports whether the session may use document management commands.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type account struct {
	username string
	password string
	role     string
	portal   string
	name     string
}

// Demo account table. Unknown credentials fall back to a regular user
// session, matching the portal's permissive login.
var accounts = []account{
	{username: "admin", password: "admin", role: RoleAdmin, portal: PortalMain, name: "Administrator"},
	{username: "user", password: "user", role: RoleUser, portal: PortalMain, name: "Regular User"},
	{username: "student", password: "student", role: RoleStudent, portal: PortalElearning, name: "Student User"},
	{username: "215748020110333", password: "215748020110333", role: RoleStudent, portal: PortalElearning, name: "Đặng Ngọc Anh"},
	{username: "lecturer", password: "lecturer", role: RoleLecturer, portal: PortalElearning, name: "Giảng viên"},
}

// Login authenticates the credentials and persists the session flags.
func Login(path, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	session := &Session{
		Username: username,
		Role:     RoleUser,
		Portal:   PortalMain,
		Name:     username,
	}
	for _, a := range accounts {
		if a.username == username && a.password == password {
			session.Role = a.role
			session.Portal = a.portal
			session.Name = a.name
			break
		}
	}
	expanded, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}
	session.path = expanded
	if err := session.save(); err != nil {
		return nil, err
	}
	return session, nil
}

// Load reads the persisted session flags.
func Load(path string) (*Session, error) {
	expanded, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}
	bytes, err := os.ReadFile(expanded)
	if os.IsNotExist(err) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading session file")
	}
	session := &Session{}
	if err := json.Unmarshal(bytes, session); err != nil {
		return nil, errors.Wrap(err, "unmarshaling session")
	}
	session.path = expanded
	return session, nil
}

// Logout clears all session flags at once.
func Logout(path string) error {
	expanded, err := file.ExpandPath(path)
	if err != nil {
		return errors.Wrap(err, "expanding path")
	}
	if err := os.Remove(expanded); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}

// RequireLogin loads the session or fails with a login hint.
func RequireLogin(path string) (*Session, error) {
	session, err := Load(path)
	if errors.Is(err, ErrNotLoggedIn) {
		return nil, errors.New("bạn chưa đăng nhập, hãy chạy `ragbot login`")
	}
	return session, err
}

// RequireAdmin loads the session and verifies the admin role.
func RequireAdmin(path string) (*Session, error) {
	session, err := RequireLogin(path)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, errors.New("lệnh này yêu cầu quyền quản trị viên")
	}
	return session, nil
}

func (s *Session) save() error {
	dir, _ := filepath.Split(s.path)
	if err := file.CreateDirectoryIfNotExist(dir); err != nil {
		return errors.Wrap(err, "creating folders")
	}
	bytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling session")
	}
	if err := os.WriteFile(s.path, bytes, 0600); err != nil {
		return errors.Wrap(err, "writing session file")
	}
	return nil
}
