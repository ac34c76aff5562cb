package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"vedacart/internal/apierror"
	"vedacart/internal/dto"
	"vedacart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProductsHandler struct {
	svc  *service.ProductService
	edit *service.EditService
}

func NewProductsHandler(svc *service.ProductService, edit *service.EditService) *ProductsHandler {
	return &ProductsHandler{svc: svc, edit: edit}
}

// Create inserts a new product. Image references must already be uploaded
// (POST /v1/media); the body carries only durable URLs.
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.ProductPayload
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update saves one edit session. Accepts either a plain JSON body or a
// multipart form with staged image files next to a "payload" JSON part.
func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}

	var in service.EditInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in, err = bindMultipartEdit(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
	} else {
		var req dto.UpdateProductRequest
		if !bindAndValidate(c, &req) {
			return
		}
		in = service.EditInput{
			Fields:      req.ProductPayload,
			RemoveHero:  req.RemoveHero,
			ToBeDeleted: req.ToBeDeleted,
		}
	}

	resp, err := h.edit.Save(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// bindMultipartEdit extracts the edit session from a multipart form:
// "payload" (JSON part), "heroImage" (optional file), "images" (files),
// "removeHero" and "toBeDeleted" repeated form values.
func bindMultipartEdit(c *gin.Context) (service.EditInput, error) {
	var in service.EditInput

	form, err := c.MultipartForm()
	if err != nil {
		return in, err
	}

	var req dto.UpdateProductRequest
	if raw := form.Value["payload"]; len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw[0]), &req); err != nil {
			return in, err
		}
		if err := validate.Struct(&req); err != nil {
			var violations []string
			for _, fe := range err.(validator.ValidationErrors) {
				violations = append(violations, fe.Field()+": "+fe.Tag())
			}
			return in, apierror.NewValidation(violations)
		}
	}
	in.Fields = req.ProductPayload
	in.ToBeDeleted = append(req.ToBeDeleted, form.Value["toBeDeleted"]...)

	in.RemoveHero = req.RemoveHero
	if raw := form.Value["removeHero"]; len(raw) > 0 {
		v, err := strconv.ParseBool(raw[0])
		if err != nil {
			return in, err
		}
		in.RemoveHero = v
	}

	if fhs := form.File["heroImage"]; len(fhs) > 0 {
		f, err := readFormFile(fhs[0])
		if err != nil {
			return in, err
		}
		in.NewHero = &f
	}
	for _, fh := range form.File["images"] {
		f, err := readFormFile(fh)
		if err != nil {
			return in, err
		}
		in.NewImages = append(in.NewImages, f)
	}
	return in, nil
}

// Delete removes the record and reports the per-image purge outcomes. The
// record is gone even when some purges fail.
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	outcomes, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	purge := make([]dto.PurgeOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		purge[i] = dto.PurgeOutcomeResponse{Reference: o.Reference, OK: o.OK, Error: o.Err}
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "purge": purge})
}

func (h *ProductsHandler) SetFeatured(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.ToggleFeaturedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetFeatured(c.Request.Context(), id, req.Featured); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.String(), "featured": req.Featured})
}
