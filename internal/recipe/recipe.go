// Package recipe holds the concrete Rails + HTML5 Boilerplate directive
// sequence applied to a freshly generated Rails skeleton.
package recipe

import (
	"embed"
	"errors"
	"path"
	"strings"

	"github.com/brandonbloom/railskit/internal/command"
	"github.com/brandonbloom/railskit/internal/config"
	"github.com/brandonbloom/railskit/internal/directive"
	"github.com/brandonbloom/railskit/internal/textedit"
)

//go:embed files
var files embed.FS

func file(name string) string {
	data, err := files.ReadFile(path.Join("files", name))
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Variable names the recipe references.
const (
	VarSiteTitle      = "SITE_TITLE"
	VarDevHost        = "DEV_HOST"
	VarProductionHost = "PRODUCTION_HOST"
	VarTimeZone       = "TIME_ZONE"
	VarAppName        = "APP_NAME"
	VarCommitMessage  = "COMMIT_MESSAGE"
)

// Vars seeds the variable table from cfg. TIME_ZONE is only present when
// configured; otherwise the recipe captures it from rake.
func Vars(cfg config.Config, appName string) map[string]string {
	vars := map[string]string{
		VarSiteTitle:      cfg.SiteTitle,
		VarDevHost:        cfg.Hosts.Development,
		VarProductionHost: cfg.Hosts.Production,
		VarAppName:        appName,
		VarCommitMessage:  cfg.Git.CommitMessage,
	}
	if cfg.TimeZone != "" {
		vars[VarTimeZone] = cfg.TimeZone
	}
	return vars
}

// PickTimeZone returns the first line of `rake time:zones:local` output that
// is neither blank nor a "* UTC" group header.
func PickTimeZone(stdout string) (string, error) {
	for _, line := range strings.Split(stdout, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "*") {
			continue
		}
		return line, nil
	}
	return "", errors.New("no local time zone in rake output")
}

// publicFiles are copied from the H5BP root into public/.
var publicFiles = []string{
	"crossdomain.xml",
	"humans.txt",
	"robots.txt",
	"favicon.ico",
	"apple-touch-icon.png",
	"apple-touch-icon-precomposed.png",
	"apple-touch-icon-72x72-precomposed.png",
	"apple-touch-icon-57x57-precomposed.png",
	"apple-touch-icon-114x114-precomposed.png",
}

const (
	applicationRB = "config/application.rb"
	gemfile       = "Gemfile"
	specHelper    = "spec/spec_helper.rb"
	routesRB      = "config/routes.rb"
	applicationJS = "app/assets/javascripts/application.js"
	layout        = "app/views/layouts/application.html.erb"
)

type commands struct {
	bundle, rails, rake []string
}

func parseCommands(c config.CommandsBlock) (commands, error) {
	var out commands
	var err error
	if out.bundle, err = command.Split(c.Bundle); err != nil {
		return out, err
	}
	if out.rails, err = command.Split(c.Rails); err != nil {
		return out, err
	}
	if out.rake, err = command.Split(c.Rake); err != nil {
		return out, err
	}
	return out, nil
}

func say(msg string) directive.Directive { return directive.Say{Message: msg} }

func lit(s string) textedit.Anchor { return textedit.Literal(s) }

func sub(name, pattern, replacement string) directive.Directive {
	return directive.Substitute{Path: name, Pattern: lit(pattern), Replacement: replacement}
}

func subRe(name, expr, replacement string) directive.Directive {
	return directive.Substitute{Path: name, Pattern: textedit.Regexp(expr), Replacement: replacement}
}

// Rails returns the full directive sequence for cfg, in application order.
func Rails(cfg config.Config) ([]directive.Directive, error) {
	cmds, err := parseCommands(cfg.Commands)
	if err != nil {
		return nil, err
	}
	gitOn := cfg.Git.GitEnabled()
	h5bp := func(name string) string { return cfg.Assets.H5BPBaseURL + "/" + name }
	generate := func(name string) directive.Directive {
		return directive.RunCommand{Argv: command.Join(cmds.rails, "generate", name)}
	}

	var steps []directive.Directive
	add := func(ds ...directive.Directive) { steps = append(steps, ds...) }

	add(say("Modifying a new Rails app to use sensible defaults..."))
	if gitOn {
		add(
			say("Setting up a blank git repository..."),
			directive.Git{Op: directive.GitInit},
		)
	}

	// Clean up files.
	add(
		say("Remove unnecessary files."),
		directive.Delete{Path: "public/index.html"},
		directive.Delete{Path: "public/favicon.ico"},
		directive.Delete{Path: "public/robots.txt"},
		directive.Delete{Path: "app/assets/images/rails.png"},
		directive.Delete{Path: "test", Recursive: true},

		say("Clear out README file contents and switching to Markdown. Generate TODO file."),
		directive.Delete{Path: "README"},
		directive.Overwrite{Path: "README.md", Content: "TODO\n"},
		directive.Overwrite{Path: "TODO.md", Content: "TODO\n"},

		say("Backup database.yml since we're not including it in the git repository."),
		directive.Copy{From: "config/database.yml", To: "config/database.yml.example"},

		say("Extend .gitignore to keep our repository clean and safe."),
		directive.Append{Path: ".gitignore", Content: file("gitignore")},
	)

	// Configuration.
	add(
		say("Don't log password_confirmation fields."),
		sub(applicationRB, ":password", ":password, :password_confirmation"),

		say("Don't generate default stylesheets or javascripts when scaffolding."),
		directive.InjectBefore(applicationRB, lit("    # Enable the asset pipeline"), file("generators.rb")),

		say("Try to get the local time zone."),
		directive.Capture{
			Var:  VarTimeZone,
			Argv: command.Join(cmds.rake, "time:zones:local"),
			Pick: PickTimeZone,
		},
		directive.InjectAfter(applicationRB,
			lit("# config.time_zone = 'Central Time (US & Canada)'\n"),
			"    config.time_zone = '${TIME_ZONE}'\n"),

		say("Setup mailer options."),
		directive.InjectAfter("config/environments/development.rb",
			lit("config.assets.compress = false\n"), file("mailer_development.rb")),
		directive.InjectAfter("config/environments/production.rb",
			lit("config.active_support.deprecation = :notify\n"), file("mailer_production.rb")),
		directive.InjectAfter("config/environments/test.rb",
			lit("config.active_support.deprecation = :stderr\n"), file("mailer_production.rb")),
	)

	// Gems.
	add(
		say("Add to the Gemfile."),
		subRe(gemfile, `(?m)^#.*\n`, ""),
		directive.InjectBefore(gemfile, lit("group :test do\n"), file("gemfile_app.rb")),
		directive.InjectAfter(gemfile, lit("group :test do\n"), file("gemfile_test.rb")),
		directive.Append{Path: gemfile, Content: file("gemfile_groups.rb")},

		say("Installing gems with bundler. Go and get some coffee, this could take a while..."),
		directive.RunCommand{Argv: command.Join(cmds.bundle, "install")},

		say("Installing gems/running generators."),
		say("Install 'Responders' gem."),
		generate("responders:install"),
		say("Install 'Simple Form' gem."),
		generate("simple_form:install"),
		say("Install RSpec gem."),
		generate("rspec:install"),

		say("Install Factory Girl gem."),
		directive.Touch{Path: "spec/factories.rb"},
		sub(specHelper, "config.fixture_path", "# config.fixture_path"),

		say("Install 'Capybara' gem."),
		directive.InjectAfter(specHelper, lit("require 'rspec/rails'\n"), "require 'capybara/rspec'\n"),

		say("Install 'Database Cleaner' gem."),
		sub(specHelper, "config.use_transactional_fixtures = true", file("database_cleaner.rb")),

		say("Install 'SimpleCov' gem."),
		directive.Prepend{Path: specHelper, Content: "require 'simplecov'\nSimpleCov.start 'rails'\n\n"},

		say("Install 'High Voltage' gem, and generate a static Home Page."),
		directive.Mkdir{Path: "app/views/pages"},
		directive.Overwrite{Path: "app/views/pages/home.html.erb", Content: file("home.html.erb")},
		directive.Overwrite{Path: "spec/requests/static_pages_spec.rb", Content: file("static_pages_spec.rb")},
		directive.InjectAfter(routesRB, lit("routes.draw do"),
			"\n  root :to => 'high_voltage/pages#show', :id => 'home'\n"),
		subRe(routesRB, `(?s)  #.*end`, "end"),
	)

	// Application configuration and helpers.
	add(
		say("Generate a YAML Application Configuration file."),
		directive.Overwrite{Path: "config/initializers/app_config.rb", Content: file("app_config.rb")},
		directive.Overwrite{Path: "config/app_config.yml", Content: file("app_config.yml")},

		say("Create some basic application helpers."),
		directive.Mkdir{Path: "spec/helpers"},
		directive.Overwrite{Path: "spec/helpers/application_helper_spec.rb", Content: file("application_helper_spec.rb")},
		directive.InjectAfter("app/helpers/application_helper.rb", lit("module ApplicationHelper"), file("application_helper.rb")),
	)

	// H5BP.
	add(
		say("Get H5BP Stylesheets."),
		directive.Delete{Path: "app/assets/stylesheets/application.css"},
		directive.FetchRemote{URL: h5bp("css/style.css"), Dest: "app/assets/stylesheets/application.css.scss.erb"},

		say("Get H5BP JavaScripts."),
		directive.FetchRemote{URL: h5bp("js/script.js"), Dest: "app/assets/javascripts/script.js"},
		directive.FetchRemote{URL: h5bp("js/plugins.js"), Dest: "app/assets/javascripts/plugins.js"},
		sub(applicationJS, "//= require_tree .", "//= require plugins\n//= require script\n"),
		directive.InjectBefore(applicationJS, lit("//= require jquery\n"), "//= require modernizr\n"),

		say("Get JavaScripts to help IE."),
		directive.Mkdir{Path: "app/assets/javascripts/ie"},
		directive.Overwrite{Path: "app/assets/javascripts/ie/ie.js", Content: file("ie.js")},
		directive.FetchRemote{URL: cfg.Assets.DOMAssistantURL, Dest: "app/assets/javascripts/ie/DOMAssistant.js"},
		directive.FetchRemote{URL: cfg.Assets.SelectivizrURL, Dest: "app/assets/javascripts/ie/selectivizr.js"},

		say("Get H5BP application layout."),
		directive.Delete{Path: layout},
		directive.FetchRemote{URL: h5bp("index.html"), Dest: layout},
		sub(layout, "<title></title>", "<title><%= title -%></title>"),
		subRe(layout, `(?is)<link rel="stylesheet".*</head>`, file("layout_head.html.erb")),
		sub(layout, "<header>", `<header role="banner" class="clearfix">`),
		sub(layout, "<footer>", `<footer role="contentinfo" class="clearfix">`),
		sub(layout, `<div role="main">`, `<div id="main" role="main" class="clearfix">`),
		sub(layout, "\n  </header>", "    <h1><%= link_to APP_CONFIG[:site_title], root_path -%></h1>\n  </header>"),
		directive.InjectAfter(layout, lit("<div id=\"main\" role=\"main\" class=\"clearfix\">\n"),
			"    <%= raw flash_messages %>\n    <%= yield %>"),
		subRe(layout, `(?is)<!-- JavaScript at the bottom for fast page loading -->.*<!-- end scripts -->`, ""),
		sub(layout, "<script>\n    var _gaq=[[", "<% if APP_CONFIG[:google_analytics_ua] -%>\n  <script>\n    var _gaq=[["),
		directive.InjectAfter(layout, textedit.Regexp(`(?sm)google_analytics_ua.*^\s{2}</script>`), "\n  <% end -%>"),
		sub(layout, "UA-XXXXX-X", "<%= APP_CONFIG[:google_analytics_ua] -%>"),

		say("Get H5BP Public files."),
	)
	for _, name := range publicFiles {
		add(directive.FetchRemote{URL: h5bp(name), Dest: "public/" + name})
	}

	// Finish up.
	if gitOn {
		add(
			say("Adding all files to git repository and making the 'initial commit'."),
			directive.Git{Op: directive.GitStageAll},
			directive.Git{Op: directive.GitCommit, Message: "${COMMIT_MESSAGE}"},
		)
	}
	migrate := append([]string{"exec"}, cmds.rake...)
	migrate = append(migrate, "db:migrate")
	add(
		directive.RunCommand{Argv: command.Join(cmds.bundle, migrate...)},
		say("Done setting up your new Rails app. Have fun!"),
	)
	return steps, nil
}
