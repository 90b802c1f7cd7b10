package server

import (
	"bytes"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// reloadScript is the client half of live reload, injected into served HTML.
const reloadScript = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/livereload");
  ws.onmessage = function (msg) {
    if (msg.data === "reload") location.reload();
  };
})();
`

const reloadSnippet = `<script src="/livereload.js"></script>`

// debounce matches the generator's write pattern: one regeneration touches
// many files in quick succession.
const reloadDebounce = 500 * time.Millisecond

// reloadHub tracks connected pages and broadcasts reload events when the
// archive directory changes.
type reloadHub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*websocket.Conn

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func newReloadHub(logger *log.Logger) *reloadHub {
	return &reloadHub{
		logger:  logger,
		clients: make(map[string]*websocket.Conn),
		done:    make(chan struct{}),
	}
}

// handleSocket upgrades the connection and parks it until the page goes away.
func (h *reloadHub) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	id := uuid.New().String()
	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()

	// Drain (and discard) client messages so closes are noticed.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, id)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast tells every connected page to reload.
func (h *reloadHub) broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			conn.Close()
			delete(h.clients, id)
		}
	}
}

// watch starts watching dir recursively and broadcasts debounced reloads.
func (h *reloadHub) watch(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	h.watcher = watcher

	if err := addWatchesRecursive(watcher, dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Create) {
					// New directories (a fresh month of entries) need watches.
					_ = addWatchesRecursive(watcher, ev.Name)
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					h.logger.Info("archive changed, reloading pages")
					h.broadcast()
				})
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-h.done:
				return
			}
		}
	}()

	return nil
}

func (h *reloadHub) close() {
	close(h.done)
	if h.watcher != nil {
		h.watcher.Close()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		conn.Close()
		delete(h.clients, id)
	}
}

// addWatchesRecursive watches path and every directory below it. Non-directory
// paths are ignored.
func addWatchesRecursive(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return err
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			_ = watcher.Add(p)
		}
		return nil
	})
}

// injectReloadScript rewrites served HTML pages to include the reload client.
func injectReloadScript(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !wantsHTML(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		rec := &bufferingWriter{header: make(http.Header), status: http.StatusOK}
		next.ServeHTTP(rec, r)

		body := rec.body.Bytes()
		if strings.Contains(rec.header.Get("Content-Type"), "text/html") {
			if idx := bytes.LastIndex(body, []byte("</body>")); idx >= 0 {
				var out bytes.Buffer
				out.Write(body[:idx])
				out.WriteString(reloadSnippet)
				out.Write(body[idx:])
				body = out.Bytes()
			} else {
				body = append(body, []byte(reloadSnippet)...)
			}
		}

		for k, vals := range rec.header {
			for _, v := range vals {
				w.Header().Add(k, v)
			}
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(rec.status)
		w.Write(body)
	})
}

func wantsHTML(path string) bool {
	return strings.HasSuffix(path, ".html") || strings.HasSuffix(path, "/")
}

// bufferingWriter captures a downstream response for rewriting.
type bufferingWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (b *bufferingWriter) Header() http.Header { return b.header }

func (b *bufferingWriter) WriteHeader(status int) { b.status = status }

func (b *bufferingWriter) Write(p []byte) (int, error) { return b.body.Write(p) }
