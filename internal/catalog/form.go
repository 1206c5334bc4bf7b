package catalog

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/five82/readinglist/internal/books"
)

// Messages shown under add-form fields.
const (
	MsgRequired    = "This field is required"
	MsgWholeNumber = "Must be a whole number"
	MsgNumber      = "Must be a number"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// AddForm holds the raw text of the add-book form.
type AddForm struct {
	Title     string `form:"title" validate:"required"`
	Author    string `form:"author" validate:"required"`
	Published string `form:"published" validate:"required,number"`
	Pages     string `form:"pages" validate:"required,number"`
	Genres    string `form:"genres" validate:"required"`
	Rating    string `form:"rating" validate:"required,numeric"`
	ISBN      string `form:"isbn"`
}

// FormFields lists the add-form inputs in display order.
var FormFields = []books.Field{
	books.FieldTitle,
	books.FieldAuthor,
	books.FieldPublished,
	books.FieldPages,
	books.FieldGenres,
	books.FieldRating,
	books.FieldISBN,
}

// FormErrors maps a field to the message shown under its input.
type FormErrors map[books.Field]string

// Set stores value as the raw text of field.
func (f *AddForm) Set(field books.Field, value string) {
	switch field {
	case books.FieldTitle:
		f.Title = value
	case books.FieldAuthor:
		f.Author = value
	case books.FieldPublished:
		f.Published = value
	case books.FieldPages:
		f.Pages = value
	case books.FieldGenres:
		f.Genres = value
	case books.FieldRating:
		f.Rating = value
	case books.FieldISBN:
		f.ISBN = value
	}
}

// Required reports whether field must be filled in.
func Required(field books.Field) bool {
	return field != books.FieldISBN && field != books.FieldID
}

func (f AddForm) trimmed() AddForm {
	return AddForm{
		Title:     strings.TrimSpace(f.Title),
		Author:    strings.TrimSpace(f.Author),
		Published: strings.TrimSpace(f.Published),
		Pages:     strings.TrimSpace(f.Pages),
		Genres:    strings.TrimSpace(f.Genres),
		Rating:    strings.TrimSpace(f.Rating),
		ISBN:      strings.TrimSpace(f.ISBN),
	}
}

// Validate checks the form and returns one message per failing field, or nil.
func (f AddForm) Validate() FormErrors {
	err := validate.Struct(f.trimmed())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FormErrors{books.FieldTitle: err.Error()}
	}
	out := make(FormErrors, len(verrs))
	for _, fe := range verrs {
		field := books.Field(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = MsgRequired
		case "number":
			out[field] = MsgWholeNumber
		case "numeric":
			out[field] = MsgNumber
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}

// Book validates the form and coerces it into a create payload: published and
// pages become integers, rating a float and genres a trimmed list.
func (f AddForm) Book() (books.NewBook, FormErrors) {
	if errs := f.Validate(); errs != nil {
		return books.NewBook{}, errs
	}
	t := f.trimmed()
	errs := FormErrors{}

	published, err := strconv.Atoi(t.Published)
	if err != nil {
		errs[books.FieldPublished] = MsgWholeNumber
	}
	pages, err := strconv.Atoi(t.Pages)
	if err != nil {
		errs[books.FieldPages] = MsgWholeNumber
	}
	rating, err := strconv.ParseFloat(t.Rating, 64)
	if err != nil {
		errs[books.FieldRating] = MsgNumber
	}
	if len(errs) > 0 {
		return books.NewBook{}, errs
	}

	return books.NewBook{
		Title:     t.Title,
		Author:    t.Author,
		Published: published,
		Pages:     pages,
		Genres:    SplitGenres(t.Genres),
		Rating:    rating,
		ISBN:      t.ISBN,
	}, nil
}

// SplitGenres splits a comma-separated list, trimming each entry and dropping
// empty ones.
func SplitGenres(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if genre := strings.TrimSpace(part); genre != "" {
			out = append(out, genre)
		}
	}
	return out
}
