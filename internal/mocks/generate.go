package mocks

//go:generate mockery --name "RuleRepository|AuditStore" --srcpkg github.com/hostbus/eventroute/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Store --srcpkg github.com/hostbus/eventroute/internal/core/enablement --output ./enablement --outpkg enablementmocks --with-expecter
//go:generate mockery --name "ToolInvoker|ExtensionCaller|Broadcaster" --srcpkg github.com/hostbus/eventroute/internal/dispatch --output ./dispatch --outpkg dispatchmocks --with-expecter
//go:generate mockery --name Dispatcher --srcpkg github.com/hostbus/eventroute/internal/routing --output ./routing --outpkg routingmocks --with-expecter
//go:generate mockery --name Publisher --srcpkg github.com/hostbus/eventroute/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
