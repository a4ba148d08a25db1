package mail

import "time"

type TaskEmailData struct {
	Assignee string
	LeadName string
	Title    string
	DueDate  time.Time
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
