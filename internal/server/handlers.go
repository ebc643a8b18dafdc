package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexisbeaulieu97/proposa/internal/document"
	"github.com/alexisbeaulieu97/proposa/internal/render"
	"github.com/alexisbeaulieu97/proposa/internal/signature"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// maxApprovalBody bounds the pointer event payload.
const maxApprovalBody = 1 << 20

// ApprovalRequest is the body of POST /p/{token}/approve.
type ApprovalRequest struct {
	Events []signature.PointerEvent `json:"events"`
	Signer document.Signer          `json:"signer"`
}

// ApprovalResponse is returned on a successful approval.
type ApprovalResponse struct {
	Status   document.Status `json:"status"`
	SignedAt time.Time       `json:"signed_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := mux.Vars(r)["token"]

	p, err := s.store.MutateProposalByLink(token, func(p *document.Proposal) error {
		p.RecordView(s.now())
		return nil
	})
	if err != nil {
		if proposaerrors.IsNotFound(err) {
			s.handleNotFound(w, r)
			return
		}
		s.log.Error(ctx, "record view failed", "token", token, "error", err)
		respondError(w, http.StatusInternalServerError, "could not load proposal")
		return
	}
	s.metrics.views.Inc()
	s.persist(r)

	pub := render.Public{ApproveURL: "/p/" + token + "/approve"}
	if p.Approval != nil {
		pub.Approved = true
		pub.SignedAt = p.Approval.SignedAt
		pub.SignerName = p.Approval.Signer.Name
		pub.Signature = p.Approval.Signature
	}

	start := time.Now()
	var buf bytes.Buffer
	err = s.renderer.RenderPublic(&buf, s.proposalDocument(p), pub)
	s.metrics.observeRender("public", start, err)
	if err != nil {
		s.log.Error(ctx, "render public view failed", "proposal", p.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not render proposal")
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := mux.Vars(r)["token"]

	var req ApprovalRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxApprovalBody)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	capture := signature.NewCapture(signature.DefaultWidth, signature.DefaultHeight)
	capture.Replay(req.Events)

	var approved document.Proposal
	err := capture.Submit(func(a signature.Artifact) error {
		p, err := s.store.MutateProposalByLink(token, func(p *document.Proposal) error {
			return p.Approve(a.DataURL(), req.Signer, s.now())
		})
		approved = p
		return err
	})
	switch {
	case errors.Is(err, signature.ErrNotSigned):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case proposaerrors.IsNotFound(err):
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	case proposaerrors.IsValidation(err):
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		s.log.Error(ctx, "approve failed", "token", token, "error", err)
		respondError(w, http.StatusInternalServerError, "could not approve proposal")
		return
	}

	s.metrics.approvals.Inc()
	s.persist(r)
	s.log.Info(ctx, "proposal approved", "proposal", approved.ID, "signer", approved.Approval.Signer.Name)
	respondJSON(w, http.StatusOK, ApprovalResponse{Status: approved.Status, SignedAt: approved.Approval.SignedAt})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	var doc render.Document
	switch vars["kind"] {
	case "proposal":
		p, err := s.store.Proposal(vars["id"])
		if err != nil {
			s.handleNotFound(w, r)
			return
		}
		doc = s.proposalDocument(p)
	case "template":
		t, err := s.store.Template(vars["id"])
		if err != nil {
			s.handleNotFound(w, r)
			return
		}
		doc = render.Document{
			Title:    t.Title,
			Blocks:   t.Blocks,
			Theme:    s.store.ResolveTheme(""),
			Currency: s.currency,
		}
	}
	if id := r.URL.Query().Get("theme"); id != "" {
		doc.Theme = s.store.ResolveTheme(id)
	}

	start := time.Now()
	var buf bytes.Buffer
	err := s.renderer.Render(&buf, doc)
	s.metrics.observeRender("preview", start, err)
	if err != nil {
		s.log.Error(ctx, "render preview failed", "kind", vars["kind"], "id", vars["id"], "error", err)
		respondError(w, http.StatusInternalServerError, "could not render preview")
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.renderer.RenderNotFound(&buf); err != nil {
		s.log.Error(r.Context(), "render not found page failed", "error", err)
		http.NotFound(w, r)
		return
	}
	writeHTML(w, http.StatusNotFound, buf.Bytes())
}

func (s *Server) proposalDocument(p document.Proposal) render.Document {
	return render.Document{
		Title:      p.Title,
		ClientName: s.store.ClientName(p.ClientID),
		Blocks:     p.Blocks,
		Theme:      s.store.ResolveTheme(p.ThemeID),
		Currency:   p.Currency,
	}
}

// persist writes the store after a mutation. A failed write is logged and
// the in-memory state is kept.
func (s *Server) persist(r *http.Request) {
	if err := s.store.Save(); err != nil {
		s.log.Error(r.Context(), "save workspace failed", "path", s.store.Path(), "error", err)
	}
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
