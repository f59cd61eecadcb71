package models

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Site is an installation location as served by the remote locations API
type Site struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	County      string      `json:"county"`
	Address     string      `json:"address"`
	Capacity    string      `json:"capacity,omitempty"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// SiteInput is the body accepted when creating or updating a site
type SiteInput struct {
	Name      string  `json:"name"`
	County    string  `json:"county"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Account is a full user record from the remote users API
type Account struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	Role       string   `json:"role"`
	Status     string   `json:"status"`
	Avatar     string   `json:"avatar,omitempty"`
	Company    string   `json:"company,omitempty"`
	Projects   []string `json:"projects,omitempty"`
	Sites      []string `json:"sites,omitempty"`
	LastActive string   `json:"lastActive,omitempty"`
	CreatedAt  string   `json:"createdAt"`
	NationalID string   `json:"nationalId,omitempty"`
}

// Ref reduces an account to the assignment reference kept on projects.
func (a Account) Ref() User {
	return User{ID: a.ID, Name: a.Name, Email: a.Email}
}
