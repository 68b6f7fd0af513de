package meetup

import "github.com/google/uuid"

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type UserPreferences struct {
	DefaultDistance *float64  `json:"default_distance,omitempty"`
	FavoriteAreas   []string  `json:"favorite_areas,omitempty"`
	HomeLocation    *Location `json:"home_location,omitempty"`
}

type User struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Avatar      string           `json:"avatar,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}

type CreateUserRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=100"`
	Avatar      string           `json:"avatar,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validateStruct(r)
}

// UpdateUserRequest patches a user; nil/empty fields are untouched.
type UpdateUserRequest struct {
	Name        string           `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Avatar      string           `json:"avatar,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validateStruct(r)
}

func NewUser(req CreateUserRequest) User {
	return User{
		ID:          uuid.New(),
		Name:        req.Name,
		Avatar:      req.Avatar,
		Preferences: req.Preferences,
	}
}

func (u *User) Apply(req UpdateUserRequest) {
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	if req.Preferences != nil {
		u.Preferences = req.Preferences
	}
}

func (u User) Clone() User {
	out := u
	if u.Preferences != nil {
		p := UserPreferences{}
		if u.Preferences.DefaultDistance != nil {
			d := *u.Preferences.DefaultDistance
			p.DefaultDistance = &d
		}
		p.FavoriteAreas = append([]string(nil), u.Preferences.FavoriteAreas...)
		if u.Preferences.HomeLocation != nil {
			loc := *u.Preferences.HomeLocation
			p.HomeLocation = &loc
		}
		out.Preferences = &p
	}
	return out
}
