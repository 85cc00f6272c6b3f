package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasagency-backoffice/internal/application/report"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s inválido", domain.ErrInvalidInput, name)
	}
	return id, nil
}

func queryDate(c *fiber.Ctx, name string) (entity.Date, error) {
	d, err := entity.ParseDate(c.Query(name))
	if err != nil {
		return entity.Date{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, name, err)
	}
	return d, nil
}

func pageQuery(c *fiber.Ctx) entity.PageQuery {
	return entity.PageQuery{
		Page:   c.QueryInt("page", 0),
		Size:   c.QueryInt("size", 20),
		Search: c.Query("search"),
	}.Normalize()
}

func bodyInto(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	return nil
}

func sendFile(c *fiber.Ctx, f *report.File) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Name+`"`)
	return c.Send(f.Data)
}
