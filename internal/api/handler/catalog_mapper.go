package handler

import (
	"strings"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

// toBook maps a validated request onto a new book.
func toBook(r *bookRequest) *domain.Book {
	authors := make([]domain.Author, 0, len(r.Authors))
	for _, a := range r.Authors {
		authors = append(authors, domain.Author{LastName: a.LastName, FirstName: a.FirstName})
	}
	return &domain.Book{
		Title:     r.Title,
		Kind:      r.Kind,
		Rating:    r.Rating,
		Publisher: r.Publisher,
		Date:      r.Date,
		Price:     r.Price,
		Discount:  r.Discount,
		Available: r.Available,
		ISBN:      r.ISBN,
		Homepage:  r.Homepage,
		Email:     r.Email,
		Keywords:  upper(r.Keywords),
		Authors:   authors,
	}
}

func toFilm(r *filmRequest) *domain.Film {
	return &domain.Film{
		Title:       r.Title,
		Rating:      r.Rating,
		Genre:       r.Genre,
		Length:      r.Length,
		Language:    r.Language,
		Medium:      r.Medium,
		Price:       r.Price,
		Rented:      r.Rented,
		ReleaseDate: r.ReleaseDate,
		Actors:      r.Actors,
	}
}

func toFanArticle(r *fanArticleRequest) *domain.FanArticle {
	return &domain.FanArticle{
		Title:        r.Title,
		Kind:         r.Kind,
		Rating:       r.Rating,
		Manufacturer: r.Manufacturer,
		Price:        r.Price,
		Available:    r.Available,
		Email:        r.Email,
		Keywords:     upper(r.Keywords),
	}
}

func toCustomer(r *customerRequest) *domain.Customer {
	return &domain.Customer{
		Name:      r.Name,
		FirstName: r.FirstName,
		Email:     r.Email,
		Address: domain.Address{
			Street:  r.Address.Street,
			ZipCode: r.Address.ZipCode,
			City:    r.Address.City,
		},
		Newsletter: r.Newsletter,
	}
}

func toPublisher(r *publisherRequest) *domain.Publisher {
	return &domain.Publisher{
		Name:     r.Name,
		City:     r.City,
		Founded:  r.Founded,
		Email:    r.Email,
		Homepage: r.Homepage,
	}
}

// upper normalises keywords so tag queries match regardless of input casing.
func upper(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = strings.ToUpper(k)
	}
	return out
}
