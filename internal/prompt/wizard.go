package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-storefront/pkg/api"
	"github.com/goliatone/go-storefront/pkg/formdef"
	"github.com/goliatone/go-storefront/pkg/group"
	"github.com/goliatone/go-storefront/pkg/preview"
	"github.com/goliatone/go-storefront/pkg/product"
)

// SubmitFunc sends a finished payload to the API.
type SubmitFunc func(ctx context.Context, payload *product.Payload) (api.Product, error)

// PreviewFunc receives the draft right before the submit confirmation.
type PreviewFunc func(snap product.Snapshot, lastErr *api.Error) error

// WizardOption customises a ProductWizard.
type WizardOption func(*ProductWizard)

// WithCategories sets the choices offered for the category field. Without
// categories the field is a free-form input.
func WithCategories(categories []api.Category) WizardOption {
	return func(w *ProductWizard) {
		w.categories = append([]api.Category(nil), categories...)
	}
}

// WithFileOpener overrides how image paths become files.
func WithFileOpener(open func(path string) preview.File) WizardOption {
	return func(w *ProductWizard) {
		if open != nil {
			w.open = open
		}
	}
}

// WithPreview registers a hook that runs before each submit confirmation.
func WithPreview(fn PreviewFunc) WizardOption {
	return func(w *ProductWizard) {
		w.preview = fn
	}
}

// WithWizardLogger attaches a logger to the wizard and its draft stores.
func WithWizardLogger(logger *zap.Logger) WizardOption {
	return func(w *ProductWizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithGroupOptions forwards options to every store of the draft.
func WithGroupOptions(opts ...group.Option) WizardOption {
	return func(w *ProductWizard) {
		w.groupOpts = append(w.groupOpts, opts...)
	}
}

// ProductWizard walks a vendor through the product form: basic details, then
// one tab per repeated group, then review and submit.
type ProductWizard struct {
	driver     Driver
	submit     SubmitFunc
	vendor     string
	categories []api.Category
	open       func(path string) preview.File
	preview    PreviewFunc
	logger     *zap.Logger
	groupOpts  []group.Option

	draft *product.Draft

	mu         sync.Mutex
	readErrors []*group.ReadError
}

// NewProductWizard prepares a wizard for vendor.
func NewProductWizard(driver Driver, vendor string, submit SubmitFunc, opts ...WizardOption) *ProductWizard {
	w := &ProductWizard{
		driver: driver,
		submit: submit,
		vendor: vendor,
		open:   preview.LocalFile,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	storeOpts := append([]group.Option{
		group.WithLogger(w.logger),
		group.WithOnReadError(w.recordReadError),
	}, w.groupOpts...)
	w.draft = product.NewDraft(vendor, storeOpts...)
	return w
}

// Draft exposes the live form state.
func (w *ProductWizard) Draft() *product.Draft {
	return w.draft
}

// Tab labels, in menu order.
const (
	tabDetails = "Details"
	tabReview  = "Review and submit"
)

// Row actions offered inside a tab.
const (
	actionAdd    = "Add row"
	actionEdit   = "Edit row"
	actionRemove = "Remove row"
	actionImage  = "Set image"
	actionDone   = "Done"
)

// Run drives the whole flow and returns the created product.
func (w *ProductWizard) Run(ctx context.Context) (api.Product, error) {
	if w.submit == nil {
		return api.Product{}, ErrNoSubmitter
	}
	if err := w.editDetails(ctx); err != nil {
		return api.Product{}, err
	}

	var lastErr *api.Error
	for {
		if err := w.tabs(ctx); err != nil {
			return api.Product{}, err
		}

		w.draft.Wait()
		snap := w.draft.Snapshot()
		if err := w.driver.Info(ctx, w.summary(snap)); err != nil {
			return api.Product{}, err
		}
		if w.preview != nil {
			if err := w.preview(snap, lastErr); err != nil {
				return api.Product{}, fmt.Errorf("prompt: preview: %w", err)
			}
		}

		ok, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Submit product?", Default: true})
		if err != nil {
			return api.Product{}, err
		}
		if !ok {
			again, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Keep editing?", Default: true})
			if err != nil {
				return api.Product{}, err
			}
			if !again {
				return api.Product{}, ErrAborted
			}
			continue
		}

		payload, err := snap.Payload()
		if err != nil {
			return api.Product{}, err
		}
		created, err := w.submit(ctx, payload)
		if err == nil {
			return created, nil
		}

		apiErr, isAPI := api.AsError(err)
		if !isAPI {
			return api.Product{}, err
		}
		lastErr = apiErr
		w.logger.Info("product rejected", zap.Int("status", apiErr.Status), zap.Strings("paths", apiErr.Paths()))
		if err := w.driver.Info(ctx, describeAPIError(apiErr)); err != nil {
			return api.Product{}, err
		}
		retry, cerr := w.driver.Confirm(ctx, ConfirmConfig{Message: "Fix and resubmit?", Default: true})
		if cerr != nil {
			return api.Product{}, cerr
		}
		if !retry {
			return api.Product{}, err
		}
	}
}

func (w *ProductWizard) tabs(ctx context.Context) error {
	options := []string{tabDetails}
	for _, name := range product.GroupNames {
		options = append(options, product.Definition(name).Label)
	}
	options = append(options, tabReview)

	for {
		idx, err := w.driver.Select(ctx, SelectConfig{Message: "Choose a tab", Options: options})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			continue
		}
		switch {
		case options[idx] == tabReview:
			return nil
		case options[idx] == tabDetails:
			err = w.editDetails(ctx)
		default:
			err = w.editTab(ctx, product.GroupNames[idx-1])
		}
		if err != nil {
			return err
		}
	}
}

func (w *ProductWizard) editTab(ctx context.Context, name string) error {
	def := product.Definition(name)
	switch name {
	case product.GroupSpecifications:
		return editGroup(ctx, w, w.draft.Specifications, def)
	case product.GroupColors:
		return editGroup(ctx, w, w.draft.Colors, def)
	case product.GroupSizes:
		return editGroup(ctx, w, w.draft.Sizes, def)
	case product.GroupGallery:
		return editGroup(ctx, w, w.draft.Gallery, def)
	}
	return fmt.Errorf("prompt: unknown tab %q", name)
}

func (w *ProductWizard) editDetails(ctx context.Context) error {
	current, _ := w.draft.Details.Snapshot().At(0)

	for _, field := range product.DetailFields {
		switch field {
		case product.FieldVendor:
			continue
		case product.FieldDescription:
			value, err := w.driver.TextArea(ctx, TextAreaConfig{
				Message: formdef.Label(field),
				Default: current.Field(field),
				Help:    "Basic HTML is allowed; unsafe markup is removed on submit.",
			})
			if err != nil {
				return err
			}
			w.draft.SetDetail(field, value)
		case product.FieldCategory:
			value, err := w.askCategory(ctx, current.Field(field))
			if err != nil {
				return err
			}
			w.draft.SetDetail(field, value)
		default:
			value, err := w.driver.Input(ctx, InputConfig{
				Message:   formdef.Label(field),
				Default:   current.Field(field),
				Validator: validatorFor(field),
			})
			if err != nil {
				return err
			}
			w.draft.SetDetail(field, strings.TrimSpace(value))
		}
	}

	path, err := w.driver.Input(ctx, InputConfig{
		Message: "Thumbnail image path",
		Help:    "Leave empty to keep the current thumbnail.",
	})
	if err != nil {
		return err
	}
	if path = strings.TrimSpace(path); path != "" {
		w.draft.Details.SetImage(0, w.open(path))
	}
	return nil
}

func (w *ProductWizard) askCategory(ctx context.Context, current string) (string, error) {
	if len(w.categories) == 0 {
		return w.driver.Input(ctx, InputConfig{Message: "Category ID", Default: current})
	}

	options := make([]string, len(w.categories))
	defaultIdx := -1
	for i, c := range w.categories {
		options[i] = c.Title
		if strconv.Itoa(c.ID) == current {
			defaultIdx = i
		}
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Category", Options: options, DefaultIndex: defaultIdx})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(w.categories) {
		return current, nil
	}
	return strconv.Itoa(w.categories[idx].ID), nil
}

func editGroup[R group.Shape[R]](ctx context.Context, w *ProductWizard, store *group.Store[R], def formdef.Definition) error {
	title := def.Label
	fields := def.FieldNames()
	images := def.Image
	for {
		snap := store.Snapshot()
		if err := w.driver.Info(ctx, describeGroup(title, snap, fields)); err != nil {
			return err
		}

		actions := []string{actionAdd}
		if snap.Len() > 0 {
			if len(fields) > 0 {
				actions = append(actions, actionEdit)
			}
			actions = append(actions, actionRemove)
			if images {
				actions = append(actions, actionImage)
			}
		}
		actions = append(actions, actionDone)

		idx, err := w.driver.Select(ctx, SelectConfig{Message: title, Options: actions})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch actions[idx] {
		case actionDone:
			return nil
		case actionAdd:
			store.Append()
		case actionRemove:
			row, err := w.chooseRow(ctx, "Remove which row?", snap.Len())
			if err != nil {
				return err
			}
			store.RemoveAt(row)
		case actionEdit:
			row, err := w.chooseRow(ctx, "Edit which row?", snap.Len())
			if err != nil {
				return err
			}
			record, ok := snap.At(row)
			if !ok {
				continue
			}
			for _, field := range fields {
				value, err := w.driver.Input(ctx, InputConfig{
					Message:   product.FieldLabel(def.Name, field),
					Default:   record.Field(field),
					Validator: validatorFor(field),
				})
				if err != nil {
					return err
				}
				store.UpdateField(row, field, strings.TrimSpace(value))
			}
		case actionImage:
			row, err := w.chooseRow(ctx, "Set the image of which row?", snap.Len())
			if err != nil {
				return err
			}
			path, err := w.driver.Input(ctx, InputConfig{
				Message: "Image path",
				Help:    "Leave empty to clear the image.",
			})
			if err != nil {
				return err
			}
			if path = strings.TrimSpace(path); path == "" {
				store.SetImage(row, nil)
			} else {
				store.SetImage(row, w.open(path))
			}
		}
	}
}

func (w *ProductWizard) chooseRow(ctx context.Context, message string, rows int) (int, error) {
	options := make([]string, rows)
	for i := range options {
		options[i] = fmt.Sprintf("Row %d", i+1)
	}
	return w.driver.Select(ctx, SelectConfig{Message: message, Options: options})
}

func (w *ProductWizard) recordReadError(err *group.ReadError) {
	w.mu.Lock()
	w.readErrors = append(w.readErrors, err)
	w.mu.Unlock()
}

// ReadErrors returns the image reads that failed so far.
func (w *ProductWizard) ReadErrors() []*group.ReadError {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*group.ReadError(nil), w.readErrors...)
}

func (w *ProductWizard) summary(snap product.Snapshot) string {
	var b strings.Builder
	b.WriteString("Product\n")
	for _, field := range product.DetailFields {
		fmt.Fprintf(&b, "  %s: %s\n", formdef.Label(field), snap.Details.Field(field))
	}
	fmt.Fprintf(&b, "  Thumbnail: %s\n", imageName(snap.Details.Image))

	b.WriteString(describeGroup(product.Definition(product.GroupGallery).Label, snap.Gallery, nil))
	b.WriteString(describeGroup(product.Definition(product.GroupSpecifications).Label, snap.Specifications, product.GroupFields[product.GroupSpecifications]))
	b.WriteString(describeGroup(product.Definition(product.GroupSizes).Label, snap.Sizes, product.GroupFields[product.GroupSizes]))
	b.WriteString(describeGroup(product.Definition(product.GroupColors).Label, snap.Colors, product.GroupFields[product.GroupColors]))

	for _, err := range w.ReadErrors() {
		fmt.Fprintf(&b, "! %s\n", err.Error())
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeGroup[R group.Shape[R]](title string, g group.Group[R], fields []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", title, g.Len())
	for i, record := range g.Records() {
		parts := make([]string, 0, len(fields)+1)
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s=%q", field, record.Field(field)))
		}
		if img := record.ImageRef(); img != nil {
			parts = append(parts, "image="+imageName(img))
		}
		fmt.Fprintf(&b, "  %d. %s\n", i+1, strings.Join(parts, " "))
	}
	return b.String()
}

func describeAPIError(err *api.Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The server rejected the product (status %d)\n", err.Status)
	for _, msg := range err.Form {
		fmt.Fprintf(&b, "  %s\n", msg)
	}
	for _, path := range err.Paths() {
		fmt.Fprintf(&b, "  %s: %s\n", path, strings.Join(err.FieldErrors(path), "; "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func imageName(img *preview.Image) string {
	if img == nil {
		return "none"
	}
	return fmt.Sprintf("%s (%s)", img.Name(), img.MediaType)
}

var errNotNumber = errors.New("must be a number")

func validatorFor(field string) func(string) error {
	switch field {
	case product.FieldPrice, product.FieldOldPrice, product.FieldShippingAmount:
		return func(value string) error {
			if strings.TrimSpace(value) == "" {
				return nil
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
				return errNotNumber
			}
			return nil
		}
	case product.FieldStockQty:
		return func(value string) error {
			if strings.TrimSpace(value) == "" {
				return nil
			}
			if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
				return errNotNumber
			}
			return nil
		}
	}
	return nil
}
