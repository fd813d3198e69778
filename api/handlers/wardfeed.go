package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the admission UI is served from the hospital's own origin; the API
	// sits behind the same gateway
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WardFeed streams live availability snapshots for one ward over a
// websocket so open bed grids refresh when another wizard takes a bed
type WardFeed struct {
	Registry *hospital.Registry
}

// ServeWard upgrades the connection and pushes a snapshot on every
// registry change until the client goes away
func (f WardFeed) ServeWard(w http.ResponseWriter, r *http.Request) {
	wardType, wardNumber := wardVars(r)

	updates, cancel, ok := f.Registry.Watch(wardType, wardNumber)
	if !ok {
		http.Error(w, `{"error": "ward not found"}`, http.StatusNotFound)
		return
	}
	defer cancel()

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// drain client frames so pings and closes are processed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// initial snapshot so a fresh grid renders without waiting for a change
	if snap, found := f.Registry.Availability(wardType, wardNumber); found {
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}

	for {
		select {
		case snap, more := <-updates:
			if !more {
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
