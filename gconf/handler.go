package gconf

import (
	"reflect"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/x"
)

// PatchMsg is a message changing a configuration. ConfigPatch returns the
// new values, or nil if the message carries none. Zero fields of the patch
// keep their current value.
type PatchMsg interface {
	payday.Msg
	ConfigPatch() OwnedConfig
}

// UpdateHandler applies PatchMsg messages to the configuration of a package.
// Every change must be signed by the owner named in the stored
// configuration.
type UpdateHandler struct {
	pkg  string
	kind reflect.Type
	auth x.Authenticator
}

var _ payday.Handler = (*UpdateHandler)(nil)

// NewUpdateHandler returns a handler for the configuration of pkg. The
// example value only sets the type of the configuration.
func NewUpdateHandler(pkg string, example OwnedConfig, auth x.Authenticator) *UpdateHandler {
	return &UpdateHandler{
		pkg:  pkg,
		kind: reflect.TypeOf(example).Elem(),
		auth: auth,
	}
}

func (h *UpdateHandler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &payday.CheckResult{}, nil
}

func (h *UpdateHandler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	conf, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &payday.DeliverResult{Log: "configuration of " + h.pkg + " updated: " + conf.String()}, nil
}

func (h *UpdateHandler) apply(ctx payday.Context, db payday.KVStore, tx payday.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	pm, ok := msg.(PatchMsg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "%T does not patch a configuration", msg)
	}
	if err := pm.Validate(); err != nil {
		return nil, err
	}
	patch := pm.ConfigPatch()
	if patch == nil || reflect.ValueOf(patch).IsNil() {
		return nil, errors.Field("Patch", errors.ErrEmpty, "required")
	}

	conf := reflect.New(h.kind).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, conf); err != nil {
		return nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, conf.GetOwner(), "configuration owner"); err != nil {
		return nil, err
	}
	if err := merge(conf, patch); err != nil {
		return nil, err
	}
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// merge copies the non zero fields of patch into conf.
func merge(conf, patch OwnedConfig) error {
	dst := reflect.ValueOf(conf).Elem()
	src := reflect.ValueOf(patch).Elem()
	if dst.Type() != src.Type() {
		return errors.Wrapf(errors.ErrType, "patch of %s applied to %s", src.Type(), dst.Type())
	}
	for i := 0; i < src.NumField(); i++ {
		f := src.Field(i)
		if !dst.Field(i).CanSet() {
			continue
		}
		if reflect.DeepEqual(f.Interface(), reflect.Zero(f.Type()).Interface()) {
			continue
		}
		dst.Field(i).Set(f)
	}
	return nil
}
