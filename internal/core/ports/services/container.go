package services

// ServiceContainer bundles the service facades the HTTP layer depends on.
type ServiceContainer struct {
	Auth        AuthSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	User        UserSvcFacade
	Party       PartySvcFacade
	Item        ItemSvcFacade
	Transaction TransactionSvcFacade
	Bnpl        BnplSvcFacade
	SyncLog     SyncLogSvcFacade
	Reporting   ReportingSvcFacade
}
