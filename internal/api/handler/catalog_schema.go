package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type authorRequest struct {
	LastName  string `json:"lastName"  validate:"required,wordstart"`
	FirstName string `json:"firstName" validate:"required"`
}

type bookRequest struct {
	Title     string          `json:"title"     validate:"required,wordstart"`
	Kind      string          `json:"kind"      validate:"omitempty,oneof=KINDLE PRINT"`
	Rating    *int            `json:"rating"    validate:"omitempty,gte=0,lte=5"`
	Publisher string          `json:"publisher" validate:"required"`
	Date      *time.Time      `json:"date"`
	Price     float64         `json:"price"     validate:"gte=0"`
	Discount  float64         `json:"discount"  validate:"gte=0,lt=1"`
	Available bool            `json:"available"`
	ISBN      string          `json:"isbn"      validate:"omitempty,isbn"`
	Homepage  string          `json:"homepage"  validate:"omitempty,url"`
	Email     string          `json:"email"     validate:"omitempty,email"`
	Keywords  []string        `json:"keywords"  validate:"omitempty,dive,required"`
	Authors   []authorRequest `json:"authors"   validate:"omitempty,dive"`
}

type filmRequest struct {
	Title       string     `json:"title"       validate:"required,wordstart"`
	Rating      *int       `json:"rating"      validate:"omitempty,gte=0,lte=5"`
	Genre       string     `json:"genre"`
	Length      int        `json:"length"      validate:"gte=0"`
	Language    string     `json:"language"`
	Medium      string     `json:"medium"      validate:"required,oneof=DVD Blu-Ray"`
	Price       float64    `json:"price"       validate:"gte=0"`
	Rented      bool       `json:"rented"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Actors      []string   `json:"actors"      validate:"omitempty,dive,required"`
}

type fanArticleRequest struct {
	Title        string   `json:"title"        validate:"required,wordstart"`
	Kind         string   `json:"kind"         validate:"required,oneof=CLOTHING DIGITAL"`
	Rating       *int     `json:"rating"       validate:"omitempty,gte=0,lte=5"`
	Manufacturer string   `json:"manufacturer" validate:"required"`
	Price        float64  `json:"price"        validate:"gte=0"`
	Available    bool     `json:"available"`
	Email        string   `json:"email"        validate:"omitempty,email"`
	Keywords     []string `json:"keywords"     validate:"omitempty,dive,required"`
}

type addressRequest struct {
	Street  string `json:"street"`
	ZipCode string `json:"zipCode" validate:"required,len=5,numeric"`
	City    string `json:"city"    validate:"required"`
}

type customerRequest struct {
	Name       string         `json:"name"       validate:"required,wordstart"`
	FirstName  string         `json:"firstName"  validate:"required"`
	Email      string         `json:"email"      validate:"omitempty,email"`
	Address    addressRequest `json:"address"`
	Newsletter bool           `json:"newsletter"`
}

type publisherRequest struct {
	Name     string `json:"name"     validate:"required,wordstart"`
	City     string `json:"city"`
	Founded  int    `json:"founded"  validate:"omitempty,gte=1450,lte=2100"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Homepage string `json:"homepage" validate:"omitempty,url"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
