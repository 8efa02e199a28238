package api

// @title CommentSweep API
// @version v0.4.1
// @description API for the CommentSweep source comment analyzer.
// @termsOfService http://example.com/terms/

// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8655
// @BasePath /api
// @schemes http
// @query.collection.format multi
