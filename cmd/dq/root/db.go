package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"dailyquest/internal/engine"
	"dailyquest/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	svc, err := engine.NewService(db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := svc.SeedCatalog(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// currentPlayer resolves the acting player from --player or DQ_PLAYER and
// runs the boundary check, so a session that crosses 17:00 starts from a
// fresh day.
func currentPlayer(ctx context.Context, svc *engine.Service) (*storage.Player, error) {
	name := playerName
	if name == "" {
		name = os.Getenv("DQ_PLAYER")
	}
	if name == "" {
		return nil, errors.New("no player selected; use --player or set DQ_PLAYER")
	}
	p, err := svc.PlayerRepo().GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("player %q not found; run `dq signup %s` first", name, name)
	}
	if _, err := svc.CheckAndReset(ctx, p.ID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return svc.PlayerRepo().Get(ctx, p.ID)
}
