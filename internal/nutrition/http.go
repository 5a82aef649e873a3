package nutrition

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// WriteError responds with the status and message derived from err's kind.
// Server side failures are logged with the full error chain.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("request failed [%s]: %s", KindOf(err), err)
	} else {
		log.Debugf("request rejected [%s]: %s", KindOf(err), err)
	}
	http.Error(w, PublicMessage(err), status)
}
