package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
)

func (app *application) getAllBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.CreateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// ownership comes from the verified token identity, never from the body
	user := app.getUserContext(r)

	blog, err := app.blogService.CreateBlog(r.Context(), &input, user.ID)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			app.failedValidationErrorResponse(w, r, map[string]string{"title": "a blog with this title already exists"})
		case errors.Is(err, blogservice.ErrUserForeignKey):
			app.unAuthorizedErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	if httprouter.ParamsFromContext(r.Context()).ByName("id") == "stats" {
		app.blogStatsHandler(w, r)
		return
	}

	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input blogservice.UpdateBlogRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	blog, err := app.blogService.UpdateBlog(r.Context(), id, &input, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrEditConflict):
			app.editConflictErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrNotOwner), errors.Is(err, blogservice.ErrNoOwner):
			app.unAuthorizedErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			app.failedValidationErrorResponse(w, r, map[string]string{"title": "a blog with this title already exists"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	err = app.blogService.DeleteBlog(r.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrNotOwner), errors.Is(err, blogservice.ErrNoOwner):
			app.unAuthorizedErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) likeBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	likes, err := app.blogService.LikeBlog(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"likes": likes}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type addCommentRequest struct {
	Comment string `json:"comment"`
}

func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input addCommentRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comments, err := app.blogService.AddComment(r.Context(), id, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) blogStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.blogService.Stats(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"stats": stats}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
