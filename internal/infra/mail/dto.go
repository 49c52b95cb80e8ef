package mail

type ReminderEmailData struct {
	CSR         string
	LeadName    string
	CompanyName string
	Kind        string
	DueDate     string
	Overdue     bool
	CadenceDay  int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	dialer Dialer
}
