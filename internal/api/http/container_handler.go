package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/service"
)

type ContainerHandler struct {
	containerSvc service.ContainerService
}

func NewContainerHandler(containerSvc service.ContainerService) *ContainerHandler {
	return &ContainerHandler{containerSvc: containerSvc}
}

type createContainersRequest struct {
	Count int32  `json:"count"`
	ID    string `json:"id"`
}

type transitionRequest struct {
	Status        string `json:"status"`
	Holder        string `json:"holder"`
	ReturnedClean *bool  `json:"returned_clean"`
}

type assignRequest struct {
	ContainerIDs []domain.ContainerID `json:"container_ids"`
	Holder       string               `json:"holder"`
	HolderKind   string               `json:"holder_kind"`
}

// List handles GET /containers?status=CLEAN&q=C00
func (h *ContainerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ContainerFilter{IDContains: r.URL.Query().Get("q")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseContainerStatus(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter.Status = status
	}
	containers, err := h.containerSvc.ListContainers(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if containers == nil {
		containers = []domain.Container{}
	}
	writeJSON(w, http.StatusOK, containers)
}

// Create handles POST /containers with either {"count": n} or {"id": "..."}.
func (h *ContainerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContainersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ID != "" {
		if req.Count != 0 {
			writeError(w, r, fmt.Errorf("%w: give either count or id, not both", domain.ErrInvalidArgument))
			return
		}
		c, err := h.containerSvc.RegisterContainer(r.Context(), domain.ContainerID(req.ID))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, []domain.Container{*c})
		return
	}

	created, err := h.containerSvc.CreateContainers(r.Context(), req.Count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContainerHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.containerSvc.GetContainer(r.Context(), domain.ContainerID(mux.Vars(r)["id"]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContainerHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	next, err := domain.ParseContainerStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.containerSvc.TransitionContainer(r.Context(), domain.ContainerID(mux.Vars(r)["id"]), next, service.TransitionOptions{
		Holder:        domain.HolderID(req.Holder),
		ReturnedClean: req.ReturnedClean,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContainerHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	kind := domain.HolderKind(req.HolderKind)
	if kind == "" {
		kind = domain.HolderKindCustomer
	}
	assigned, err := h.containerSvc.AssignContainers(r.Context(), req.ContainerIDs, domain.HolderID(req.Holder), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assigned)
}
