package handlers

// @title Blog API
// @version 1.0
// @description Posts, menus and login for the blog front end

// @contact.name API Support
// @contact.url https://github.com/umanari145/blog-backend

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @tag.name blogs
// @tag.description Blog post operations

// @tag.name menus
// @tag.description Category, tag and month navigation

// @tag.name auth
// @tag.description Credential check
