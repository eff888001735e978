package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error           { assignID(&u.ID); return nil }
func (s *Session) BeforeCreate(*gorm.DB) error        { assignID(&s.ID); return nil }
func (r *SessionRequest) BeforeCreate(*gorm.DB) error { assignID(&r.ID); return nil }
func (c *TaskCategory) BeforeCreate(*gorm.DB) error   { assignID(&c.ID); return nil }
func (t *Task) BeforeCreate(*gorm.DB) error           { assignID(&t.ID); return nil }
func (i *TaskInstance) BeforeCreate(*gorm.DB) error   { assignID(&i.ID); return nil }
func (p *ProgressUpdate) BeforeCreate(*gorm.DB) error { assignID(&p.ID); return nil }
func (f *FileRecord) BeforeCreate(*gorm.DB) error     { assignID(&f.ID); return nil }
func (a *AuditLog) BeforeCreate(*gorm.DB) error       { assignID(&a.ID); return nil }
func (n *Notification) BeforeCreate(*gorm.DB) error   { assignID(&n.ID); return nil }
