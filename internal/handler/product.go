package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/middleware"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/models"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/service"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/util"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the owner-scoped product endpoints. Requests are
// multipart forms because the image travels with the fields.
type ProductHandler struct {
	Service *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{Service: svc}
}

// ---------- request/response shapes ----------

type productForm struct {
	Name        string `form:"name" binding:"required,max=150"`
	Category    string `form:"category" binding:"required,max=50"`
	Price       int64  `form:"price"`
	Stock       int    `form:"stock"`
	Description string `form:"description" binding:"max=2000"`
}

type productResp struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResp(p *models.Product) productResp {
	imageURL := ""
	if p.Image != "" {
		imageURL = "/uploads/" + p.Image
	}
	return productResp{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		ImageURL:    imageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (f *productForm) validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
	if err := util.ValidateProductName(f.Name); err != nil {
		return err
	}
	if err := util.ValidateCategory(f.Category); err != nil {
		return err
	}
	if err := util.ValidatePrice(f.Price); err != nil {
		return err
	}
	return util.ValidateStock(f.Stock)
}

func (f *productForm) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        f.Name,
		Category:    f.Category,
		Price:       f.Price,
		Stock:       f.Stock,
		Description: strings.TrimSpace(f.Description),
	}
}

// readImage returns the uploaded image bytes, or nil content when the form
// has no file or an empty one. A file that is present but cannot be read is
// an error, not a missing upload.
func readImage(fh *multipart.FileHeader) ([]byte, string, error) {
	if fh == nil || fh.Size == 0 {
		return nil, "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	if len(content) == 0 {
		return nil, "", nil
	}
	return content, fh.Filename, nil
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// ---------- endpoints ----------

// Create persists the product first so its id exists, then stores the image
// if one was uploaded.
func (h *ProductHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}
	if err := form.validate(); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	product, err := h.Service.Create(user.ID, form.toInput())
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	fh, _ := c.FormFile("image")
	content, name, err := readImage(fh)
	if err != nil {
		// record is saved, image is not; surface the fault
		util.Error(c, util.MsgImageRejected)
		return
	}
	if content != nil {
		if err := h.Service.AttachImage(product, content, name); err != nil {
			util.Error(c, util.MsgImageRejected)
			return
		}
	}

	util.Success(c, util.MsgProductCreated, gin.H{
		"product": toProductResp(product),
	})
}

// List returns the caller's products.
func (h *ProductHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	products, err := h.Service.List(user.ID)
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	resp := make([]productResp, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResp(&products[i]))
	}

	util.Success(c, "", gin.H{
		"products": resp,
	})
}

// Detail returns one product. A foreign or missing id is the same 404.
func (h *ProductHandler) Detail(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	id, ok := parseID(c)
	if !ok {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	product, err := h.Service.Get(id, user.ID)
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}
	if product == nil {
		util.Fail(c, http.StatusNotFound, util.MsgProductNotFound)
		return
	}

	util.Success(c, "", gin.H{
		"product": toProductResp(product),
	})
}

// Update rewrites the fields and replaces the image when a new one was
// uploaded. A foreign or missing id is a silent no-op.
func (h *ProductHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	id, ok := parseID(c)
	if !ok {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}
	if err := form.validate(); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	product, err := h.Service.Update(id, user.ID, form.toInput())
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}
	if product == nil {
		// silent no-op on missing or foreign products
		util.Success(c, "", nil)
		return
	}

	fh, _ := c.FormFile("image")
	content, name, err := readImage(fh)
	if err != nil {
		util.Error(c, util.MsgImageRejected)
		return
	}
	if content != nil {
		if err := h.Service.AttachImage(product, content, name); err != nil {
			util.Error(c, util.MsgImageRejected)
			return
		}
	}

	util.Success(c, util.MsgProductUpdated, gin.H{
		"product": toProductResp(product),
	})
}

// Delete removes the product and its image. A foreign or missing id is a
// silent no-op.
func (h *ProductHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	id, ok := parseID(c)
	if !ok {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	removed, err := h.Service.Delete(id, user.ID)
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}
	if !removed {
		util.Success(c, "", nil)
		return
	}

	util.Success(c, util.MsgProductDeleted, nil)
}
