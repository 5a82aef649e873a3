package misc

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/pkg"
)

type Handler struct {
	versionInfo string
}

type WhoAmIResponse struct {
	UserID string    `json:"userId"`
	Role   auth.Role `json:"role"`
}

func NewHandler(versionInfo string) *Handler {
	return &Handler{
		versionInfo: versionInfo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/whoami", handler.handleWhoAmI).Methods("GET", "OPTIONS").Name("whoami")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	pkg.WriteJSON(w, WhoAmIResponse{
		UserID: identity.UserID,
		Role:   identity.Role,
	}, http.StatusOK)
}
