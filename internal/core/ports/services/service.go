package services

// ServiceContainer holds instances of all the application services.
// Handlers and the admin CLI reach every tracker through it.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Checklist   ChecklistSvcFacade
	Document    DocumentSvcFacade
	Payment     PaymentSvcFacade
	Timeline    TimelineSvcFacade
	PostClosing PostClosingSvcFacade
	Dashboard   DashboardSvc
}
