package service

import (
	"fmt"
	"html"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

// BookSpec lists books by title, supports ?title= and the javascript and
// typescript flags, and mails notifyTo on every new book.
func BookSpec(notifyTo string) CatalogSpec[*domain.Book] {
	return CatalogSpec[*domain.Book]{
		Name:        "book",
		UniqueField: "title",
		SortField:   "title",
		TextField:   "title",
		TagField:    "keywords",
		Tags: map[string]string{
			"javascript": domain.TagJavaScript,
			"typescript": domain.TagTypeScript,
		},
		Notify: func(b *domain.Book) *domain.Mail {
			return newEntityMail(notifyTo, "book", b.ID, b.Title)
		},
	}
}

func FilmSpec() CatalogSpec[*domain.Film] {
	return CatalogSpec[*domain.Film]{
		Name:        "film",
		UniqueField: "title",
		SortField:   "title",
		TextField:   "title",
	}
}

// FanArticleSpec supports ?title= and the hot and nothot flags.
func FanArticleSpec(notifyTo string) CatalogSpec[*domain.FanArticle] {
	return CatalogSpec[*domain.FanArticle]{
		Name:        "fan article",
		UniqueField: "title",
		SortField:   "title",
		TextField:   "title",
		TagField:    "keywords",
		Tags: map[string]string{
			"hot":    domain.TagHot,
			"nothot": domain.TagNotHot,
		},
		Notify: func(a *domain.FanArticle) *domain.Mail {
			return newEntityMail(notifyTo, "fan article", a.ID, a.Title)
		},
	}
}

func CustomerSpec() CatalogSpec[*domain.Customer] {
	return CatalogSpec[*domain.Customer]{
		Name:        "customer",
		UniqueField: "name",
		SortField:   "name",
		TextField:   "name",
	}
}

func PublisherSpec() CatalogSpec[*domain.Publisher] {
	return CatalogSpec[*domain.Publisher]{
		Name:        "publisher",
		UniqueField: "name",
		SortField:   "name",
		TextField:   "name",
	}
}

func newEntityMail(to, kind, id, title string) *domain.Mail {
	if to == "" {
		return nil
	}
	return &domain.Mail{
		To:      to,
		Subject: fmt.Sprintf("New %s %s", kind, id),
		Body:    fmt.Sprintf("<p>A new %s was added: <b>%s</b> (id %s)</p>", kind, html.EscapeString(title), id),
	}
}
