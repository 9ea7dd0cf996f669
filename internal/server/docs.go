// This file contains general API documentation annotations for Swag/OpenAPI generation.
// Individual endpoint annotations live in the handler files.
package server

// @title StreamMUSE API
// @version 1.0
// @description Read-only catalog of generated MIDI samples with blind-test voting.
// @description
// @description Features:
// @description - Filtered, searched and paginated card group listing
// @description - Vote recording to the operational log
// @description - Static leaderboard
// @description - Decoded MIDI track views for the piano roll
//
// @contact.name StreamMUSE Project
// @contact.url https://github.com/StreamMUSE/streammuse
//
// @host localhost:8080
// @BasePath /api
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
