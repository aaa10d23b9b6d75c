// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// methodNotFound replaces chi's 405 answer. A known path called with a
// method it does not serve looks exactly like an unknown path, so devices
// probing the API cannot enumerate routes. Parameterised routes such as
// the participants lookup are covered as well.
func methodNotFound(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}
