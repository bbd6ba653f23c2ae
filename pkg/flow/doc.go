// Package flow runs YAML-defined state machines whose states execute
// actions by logical name.
//
//	flows:
//	  login:
//	    start: validate
//	    on_error: event
//	    states:
//	      validate:
//	        action: RequireParams
//	        with:
//	          required: [email, password]
//	        transitions:
//	          pass: authenticate
//	          fail: form
//	          error: form
//	      authenticate:
//	        action: Login
//	        transitions:
//	          pass: welcome
//	          fail: form
//	      form:
//	        view: login_form
//	      welcome:
//	        view: welcome
//	        format: Html
//
// An action may name a comma-separated chain; the chain's composite event
// selects the transition. With on_error "abort" (the default) a failure to
// make or execute an action ends the run with an error; with "event" it is
// treated as the "error" event.
package flow
