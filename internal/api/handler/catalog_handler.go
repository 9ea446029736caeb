package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/catalogshop/catalog-api/internal/api/metrics"
	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

// CatalogHandler serves the CRUD routes of one catalog. R is the validated
// request body that toEntity maps onto the domain type.
type CatalogHandler[T domain.Entity, R any] struct {
	service  ports.CatalogService[T]
	path     string
	toEntity func(*R) T
}

// NewCatalogHandler mounts at path, e.g. "/books".
func NewCatalogHandler[T domain.Entity, R any](service ports.CatalogService[T], path string, toEntity func(*R) T) *CatalogHandler[T, R] {
	return &CatalogHandler[T, R]{service: service, path: path, toEntity: toEntity}
}

// catalog is the metrics label, the path without its leading slash.
func (h *CatalogHandler[T, R]) catalog() string { return h.path[1:] }

// GetByID handles GET /{catalog}/:id.
//
// @Summary      Get an entity by id
// @Tags         catalog
// @Produce      json
// @Param        catalog  path      string  true  "books, films, fan-articles, customers or publishers"
// @Param        id       path      string  true  "24 character hex id"
// @Success      200      {object}  map[string]any
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /{catalog}/{id} [get]
func (h *CatalogHandler[T, R]) GetByID(c echo.Context) error {
	id := c.Param("id")
	entity, found, err := h.service.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}

	base := baseURL(c) + h.path
	self := base + "/" + id
	setLinks(c, [][2]string{
		{self, "self"},
		{base, "list"},
		{base, "add"},
		{self, "update"},
		{self, "remove"},
	})
	return c.JSON(http.StatusOK, entity)
}

// GetByQuery handles GET /{catalog}. Query parameters filter the result;
// an empty result is reported as 404.
//
// @Summary      Search a catalog
// @Tags         catalog
// @Produce      json
// @Param        catalog  path      string  true   "books, films, fan-articles, customers or publishers"
// @Param        title    query     string  false  "case-insensitive substring of the title (name for customers and publishers)"
// @Success      200      {array}   map[string]any
// @Failure      404      {object}  errorResponse
// @Router       /{catalog} [get]
func (h *CatalogHandler[T, R]) GetByQuery(c echo.Context) error {
	entities, err := h.service.Find(c.Request().Context(), queryMap(c))
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		return domain.ErrNotFound
	}

	base := baseURL(c) + h.path
	setLinks(c, [][2]string{
		{base + "/" + entities[0].EntityID(), "first"},
		{base + "/" + entities[len(entities)-1].EntityID(), "last"},
	})
	return c.JSON(http.StatusOK, entities)
}

// Post handles POST /{catalog}.
//
// @Summary      Create an entity
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        catalog  path      string  true  "books, films, fan-articles, customers or publishers"
// @Success      201      {object}  map[string]any
// @Header       201      {string}  Location  "URL of the new entity"
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      406      {object}  errorResponse
// @Router       /{catalog} [post]
func (h *CatalogHandler[T, R]) Post(c echo.Context) error {
	entity, err := h.bind(c)
	if err != nil {
		return err
	}

	saved, err := h.service.Save(c.Request().Context(), entity)
	h.count("create", err)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, baseURL(c)+h.path+"/"+saved.EntityID())
	return c.JSON(http.StatusCreated, saved)
}

// Put handles PUT /{catalog}/:id.
//
// @Summary      Replace an entity
// @Tags         catalog
// @Accept       json
// @Security     BearerAuth
// @Param        catalog  path      string  true  "books, films, fan-articles, customers or publishers"
// @Param        id       path      string  true  "24 character hex id"
// @Success      204
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      406      {object}  errorResponse
// @Router       /{catalog}/{id} [put]
func (h *CatalogHandler[T, R]) Put(c echo.Context) error {
	id := c.Param("id")
	if err := domain.ValidateID(id); err != nil {
		return err
	}

	entity, err := h.bind(c)
	if err != nil {
		return err
	}
	entity.SetEntityID(id)

	_, err = h.service.Update(c.Request().Context(), entity)
	h.count("update", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /{catalog}/:id. Deleting an unknown id succeeds.
//
// @Summary      Delete an entity
// @Tags         catalog
// @Security     BearerAuth
// @Param        catalog  path      string  true  "books, films, fan-articles, customers or publishers"
// @Param        id       path      string  true  "24 character hex id"
// @Success      204
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /{catalog}/{id} [delete]
func (h *CatalogHandler[T, R]) Delete(c echo.Context) error {
	err := h.service.Remove(c.Request().Context(), c.Param("id"))
	h.count("delete", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler[T, R]) bind(c echo.Context) (T, error) {
	var zero T
	if err := requireJSON(c); err != nil {
		return zero, err
	}

	var req R
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return zero, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return zero, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.toEntity(&req), nil
}

func (h *CatalogHandler[T, R]) count(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.CatalogWritesTotal.WithLabelValues(h.catalog(), operation, result).Inc()
}

func NewBookHandler(s ports.CatalogService[*domain.Book]) *CatalogHandler[*domain.Book, bookRequest] {
	return NewCatalogHandler(s, "/books", toBook)
}

func NewFilmHandler(s ports.CatalogService[*domain.Film]) *CatalogHandler[*domain.Film, filmRequest] {
	return NewCatalogHandler(s, "/films", toFilm)
}

func NewFanArticleHandler(s ports.CatalogService[*domain.FanArticle]) *CatalogHandler[*domain.FanArticle, fanArticleRequest] {
	return NewCatalogHandler(s, "/fan-articles", toFanArticle)
}

func NewCustomerHandler(s ports.CatalogService[*domain.Customer]) *CatalogHandler[*domain.Customer, customerRequest] {
	return NewCatalogHandler(s, "/customers", toCustomer)
}

func NewPublisherHandler(s ports.CatalogService[*domain.Publisher]) *CatalogHandler[*domain.Publisher, publisherRequest] {
	return NewCatalogHandler(s, "/publishers", toPublisher)
}
