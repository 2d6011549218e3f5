package http

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/imports"
)

// ImportHandler historial de importaciones de pedidos (protegido).
type ImportHandler struct {
	uc       *imports.ImportUseCase
	maxBytes int64
}

// NewImportHandler construye el handler. maxBytes limita el tamaño del archivo subido.
func NewImportHandler(uc *imports.ImportUseCase, maxBytes int64) *ImportHandler {
	return &ImportHandler{uc: uc, maxBytes: maxBytes}
}

// Upload godoc
// @Summary      Importar reporte de pedidos
// @Description  Acepta .xlsx o .csv (UTF-8 o Latin-1, coma o punto y coma). La nueva importación queda activa.
// @Tags         imports
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file     formData  file    true  "Archivo de pedidos"
// @Param        country  formData  string  true  "País (colombia, mexico, espana)"
// @Success      201  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/imports [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo 'file' es requerido"})
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("el archivo supera el máximo de %d bytes", h.maxBytes),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("abrir archivo: %w", err))
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fmt.Errorf("leer archivo: %w", err))
	}

	out, err := h.uc.Upload(c.UserContext(), GetWorkspaceID(c), dto.UploadImportInput{
		FileName: fh.Filename,
		Country:  c.FormValue("country"),
		Content:  content,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de importaciones
// @Tags         imports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ImportListResponse
// @Router       /api/imports [get]
func (h *ImportHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener importación
// @Tags         imports
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la importación"
// @Success      200  {object}  dto.ImportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/imports/{id} [get]
func (h *ImportHandler) Get(c *fiber.Ctx) error {
	id, ok := importIDParam(c)
	if !ok {
		return invalidImportID(c)
	}
	out, err := h.uc.Get(c.UserContext(), GetWorkspaceID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Marcar importación activa
// @Tags         imports
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la importación"
// @Success      200  {object}  dto.ImportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/imports/{id}/activate [post]
func (h *ImportHandler) Activate(c *fiber.Ctx) error {
	id, ok := importIDParam(c)
	if !ok {
		return invalidImportID(c)
	}
	out, err := h.uc.SetActive(c.UserContext(), GetWorkspaceID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar o anotar importación
// @Tags         imports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la importación"
// @Param        body  body  dto.UpdateImportRequest  true  "display_name, notes"
// @Success      200   {object}  dto.ImportResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/imports/{id} [patch]
func (h *ImportHandler) Update(c *fiber.Ctx) error {
	id, ok := importIDParam(c)
	if !ok {
		return invalidImportID(c)
	}
	var in dto.UpdateImportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateMetadata(c.UserContext(), GetWorkspaceID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar importación
// @Description  Si era la activa, la más reciente restante pasa a serlo.
// @Tags         imports
// @Security     Bearer
// @Param        id   path  int  true  "ID de la importación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/imports/{id} [delete]
func (h *ImportHandler) Delete(c *fiber.Ctx) error {
	id, ok := importIDParam(c)
	if !ok {
		return invalidImportID(c)
	}
	if err := h.uc.Delete(c.UserContext(), GetWorkspaceID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func importIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidImportID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de importación inválido"})
}
