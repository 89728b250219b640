// Package contracts holds the small interfaces shared between the HTTP
// assembly in pkg/app and the domain handlers under internal/.
package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every domain handler that exposes routes.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
