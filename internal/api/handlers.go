package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"dailyquest/internal/engine"
	"dailyquest/internal/storage"
)

type playerView struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Gold              int        `json:"gold"`
	LifetimeXP        int        `json:"lifetime_xp"`
	DailyLevel        int        `json:"daily_level"`
	TasksDoneToday    int        `json:"tasks_done_today"`
	Elite             bool       `json:"elite"`
	ImmunityExpiresAt *time.Time `json:"immunity_expires_at,omitempty"`
}

func viewPlayer(p *storage.Player) playerView {
	return playerView{
		ID:                p.ID,
		Name:              p.Name,
		Gold:              p.Gold,
		LifetimeXP:        p.LifetimeXP,
		DailyLevel:        p.DailyLevel,
		TasksDoneToday:    p.TasksDoneToday,
		Elite:             p.EliteAwardedAt != nil,
		ImmunityExpiresAt: p.ImmunityExpiresAt,
	}
}

type taskView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	SortOrder int    `json:"sort_order"`
	IsDone    bool   `json:"is_done"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	p, err := s.svc.Signup(r.Context(), req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, viewPlayer(p))
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	p, err := s.svc.PlayerRepo().Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewPlayer(p))
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Title     string `json:"title"`
		SortOrder int    `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	t, err := s.svc.AddTask(r.Context(), id, req.Title, req.SortOrder)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, taskView{ID: t.ID, Title: t.Title, SortOrder: t.SortOrder, IsDone: t.IsDone})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	tasks, err := s.svc.TaskRepo().ListByPlayer(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView{ID: t.ID, Title: t.Title, SortOrder: t.SortOrder, IsDone: t.IsDone})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		PlayerID int64 `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	res, err := s.svc.CompleteTask(r.Context(), req.PlayerID, taskID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Player       playerView `json:"player"`
		AlreadyDone  bool       `json:"already_done"`
		Capped       bool       `json:"capped"`
		EliteAwarded bool       `json:"elite_awarded"`
	}{viewPlayer(res.Player), res.AlreadyDone, res.Capped, res.EliteAwarded})
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AttackerID int64 `json:"attacker_id"`
		DefenderID int64 `json:"defender_id"`
		EntryID    int64 `json:"entry_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	res, err := s.svc.Attack(r.Context(), req.AttackerID, req.DefenderID, req.EntryID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Applied           bool `json:"applied"`
		Damage            int  `json:"damage"`
		BlockedByImmunity bool `json:"blocked_by_immunity"`
	}{res.Applied, res.Damage, res.BlockedByImmunity})
}

func (s *Server) handleUsePotion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID int64 `json:"player_id"`
		EntryID  int64 `json:"entry_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	res, err := s.svc.UsePotion(r.Context(), req.PlayerID, req.EntryID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ImmunityExpiresAt time.Time `json:"immunity_expires_at"`
	}{res.ImmunityExpiresAt})
}

func (s *Server) handleUseNameScroll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID int64  `json:"player_id"`
		EntryID  int64  `json:"entry_id"`
		NewName  string `json:"new_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	res, err := s.svc.UseNameScroll(r.Context(), req.PlayerID, req.EntryID, req.NewName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, viewPlayer(res.Player))
}

func (s *Server) handleResetCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	res, err := s.svc.CheckAndReset(r.Context(), id, time.Now().UTC())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Reset         bool      `json:"reset"`
		NewCheckpoint time.Time `json:"new_checkpoint"`
	}{res.Reset, res.NewCheckpoint})
}

func (s *Server) handleListShop(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.ItemRepo().List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	type itemView struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		Type       string `json:"type"`
		Cost       int    `json:"cost"`
		Restricted bool   `json:"restricted"`
	}
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{
			ID: it.ID, Name: it.Name, Type: it.Type, Cost: it.Cost,
			Restricted: engine.ItemType(it.Type).Restricted(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID int64 `json:"player_id"`
		ItemID   int64 `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	res, err := s.svc.Purchase(r.Context(), req.PlayerID, req.ItemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reason := ""
	if res.Gate != nil {
		reason = res.Gate.Error()
	}
	writeJSON(w, http.StatusOK, struct {
		Player            playerView `json:"player"`
		InsufficientFunds bool       `json:"insufficient_funds"`
		NotEligible       bool       `json:"not_eligible"`
		Reason            string     `json:"reason,omitempty"`
	}{viewPlayer(res.Player), res.InsufficientFunds, res.NotEligible, reason})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	players, err := s.svc.PlayerRepo().ListByLifetimeXP(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]playerView, 0, len(players))
	for i := range players {
		out = append(out, viewPlayer(&players[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
