package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"intershop/config"
	"intershop/libs"
	"intershop/models"
	"intershop/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService *services.ProductService
}

func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// @Summary List products
// @Description Get a paginated product listing with optional search and sorting
// @Tags Products
// @Produce json
// @Param search query string false "Search in title and description"
// @Param sort query string false "Sort mode" Enums(NO, ALPHA, PRICE)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")
	sort := c.DefaultQuery("sort", services.SortNo)

	result, err := ctrl.productService.FindProducts(c.Request.Context(), search, sort, limit, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to retrieve products"})
		return
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((result.Total + int64(limit) - 1) / int64(limit))
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    result.Items,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: result.Total,
			TotalPages: totalPages,
		},
	})
}

// @Summary Get product
// @Description Get a single product by id
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product id"})
		return
	}

	product, err := ctrl.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		var notFound *services.ProductNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product retrieved", Data: product})
}

// @Summary Create product
// @Description Create a product with an optional image (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param price formData int true "Price in minor units"
// @Param count formData int false "Stock count"
// @Param image formData file false "Product image"
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	imgPath := ""
	if header, err := c.FormFile("image"); err == nil {
		localPath, err := libs.SaveUploadedImage(c, header, "products")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		imgPath = localPath

		if config.AppConfig.CloudinaryUpload {
			if hostedURL, err := libs.UploadToCloudinary(localPath); err == nil {
				imgPath = hostedURL
			} else {
				log.Printf("cloudinary upload failed, keeping local file: %v", err)
			}
		}
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), req, imgPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Product created", Data: product})
}
