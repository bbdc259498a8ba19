package services

import (
	"context"
	"sync"

	db "SehatCare/config/db"
	"SehatCare/mailer"

	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

// useMockDB points the shared database at the mock deployment of mt.
func useMockDB(mt *mtest.T) {
	db.DB = mt.DB
	mt.Cleanup(func() { db.DB = nil })
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func runInline(mt *mtest.T) {
	prev := dispatch
	dispatch = func(fn func()) { fn() }
	mt.Cleanup(func() { dispatch = prev })
}

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
)
