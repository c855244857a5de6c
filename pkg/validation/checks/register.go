package checks

import "flow-validation-be/pkg/validation"

// defaultSet is the full per-action check set registered under a domain's
// "default" version slot. Version-specific overrides go through
// RegisterVersion.
var defaultSet = map[string]validation.CheckFunc{
	validation.ActionSearch:    checkSearch,
	validation.ActionOnSearch:  checkOnSearch,
	validation.ActionSelect:    checkSelect,
	validation.ActionOnSelect:  checkOnSelect,
	validation.ActionInit:      checkInit,
	validation.ActionOnInit:    checkOnInit,
	validation.ActionConfirm:   checkConfirm,
	validation.ActionOnConfirm: checkOnConfirm,
	validation.ActionCancel:    checkCancel,
	validation.ActionOnCancel:  checkOnCancel,
	validation.ActionStatus:    checkStatus,
	validation.ActionOnStatus:  checkOnStatus,
	validation.ActionUpdate:    checkUpdate,
	validation.ActionOnUpdate:  checkOnUpdate,
}

// RegisterAll installs the default check set for a domain. Any protocol
// version for that domain resolves to these via the registry's
// fallback-to-default rule until a version-specific check shadows it.
func RegisterAll(r *validation.Registry, domain string) {
	for action, fn := range defaultSet {
		r.Register(domain, validation.DefaultVersion, action, fn)
	}
}

// RegisterVersion shadows one action's default check with a version-specific
// one for a domain.
func RegisterVersion(r *validation.Registry, domain, version, action string, fn validation.CheckFunc) {
	r.Register(domain, version, action, fn)
}
