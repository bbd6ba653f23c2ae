package main

import (
	"context"
	"crypto/subtle"
	"net/mail"

	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

var (
	appActions    = resolver.Location{Namespace: "App.Actions", Module: "App.dll"}
	appFormatters = resolver.Location{Namespace: "App.Formatters", Module: "App.dll"}
)

// register adds the application's components.
func register(reg *resolver.Registry) error {
	if err := reg.Register(appActions, "LoginAction", resolver.Func(newLoginAction)); err != nil {
		return err
	}
	return reg.Register(appFormatters, "Greeting", resolver.Func(newGreeting))
}

// LoginAction checks the email and password parameters against a fixed user
// list.
type LoginAction struct {
	users map[string]string
}

func newLoginAction() *LoginAction {
	return &LoginAction{users: map[string]string{"ada@example.com": "lovelace"}}
}

func (a *LoginAction) Execute(_ context.Context, ec *component.Context) (component.Event, error) {
	email := ec.Param("email")
	if _, err := mail.ParseAddress(email); err != nil {
		ec.AddError(component.Error{Source: "Login", Field: "email", Message: "must be a valid address"})
		return component.EventFail, nil
	}

	want, ok := a.users[email]
	if !ok || subtle.ConstantTimeCompare([]byte(want), []byte(ec.Param("password"))) != 1 {
		ec.AddError(component.Error{Source: "Login", Code: "invalid_credentials", Message: "unknown email or password"})
		return component.EventFail, nil
	}

	ec.Set("user", email)
	return component.EventPass, nil
}

// Greeting renders a one-line plain text welcome.
type Greeting struct{}

func newGreeting() *Greeting { return &Greeting{} }

func (*Greeting) Format(v any) (any, error) {
	m, _ := v.(map[string]any)
	user, _ := m["user"].(string)
	if user == "" {
		user = "stranger"
	}
	return "Welcome, " + user + "!\n", nil
}

func (*Greeting) SupportedTypes() []string {
	return []string{"text/plain"}
}
