package main

import "strings"

// skeleton returns the files `rails new` lays down, trimmed to what the
// recipe reads or removes.
func skeleton(module string) map[string]string {
	files := map[string]string{
		".gitignore":                  "/.bundle\n/db/*.sqlite3\n/log/*.log\n/tmp\n",
		"README":                      "== Welcome to Rails\n",
		"Rakefile":                    "require File.expand_path('../config/application', __FILE__)\n\nAPP::Application.load_tasks\n",
		"config.ru":                   "require ::File.expand_path('../config/environment',  __FILE__)\nrun APP::Application\n",
		"public/index.html":           "<!DOCTYPE html>\n<html>\n  <head>\n    <title>Ruby on Rails: Welcome aboard</title>\n  </head>\n</html>\n",
		"public/favicon.ico":          "",
		"public/robots.txt":           "# See http://www.robotstxt.org/wc/norobots.html for documentation on how to use the robots.txt file\n",
		"public/404.html":             "<!DOCTYPE html>\n<html>\n<body>The page you were looking for doesn't exist.</body>\n</html>\n",
		"app/assets/images/rails.png": "\x89PNG\r\n",
		"test/test_helper.rb":         "ENV[\"RAILS_ENV\"] = \"test\"\nrequire File.expand_path('../../config/environment', __FILE__)\nrequire 'rails/test_help'\n",
		"test/unit/.gitkeep":          "",
		"test/functional/.gitkeep":    "",
		"config/database.yml":         "development:\n  adapter: sqlite3\n  database: db/development.sqlite3\n",
		"config/application.rb": `require File.expand_path('../boot', __FILE__)

require 'rails/all'

module APP
  class Application < Rails::Application
    # Set Time.zone default to the specified zone and make Active Record auto-convert to this zone.
    # config.time_zone = 'Central Time (US & Canada)'

    # Configure sensitive parameters which will be filtered from the log file.
    config.filter_parameters += [:password]

    # Enable the asset pipeline
    config.assets.enabled = true
  end
end
`,
		"config/environments/development.rb": "APP::Application.configure do\n  # Do not compress assets\n  config.assets.compress = false\nend\n",
		"config/environments/production.rb":  "APP::Application.configure do\n  # Send deprecation notices to registered listeners\n  config.active_support.deprecation = :notify\nend\n",
		"config/environments/test.rb":        "APP::Application.configure do\n  # Print deprecation notices to the stderr\n  config.active_support.deprecation = :stderr\nend\n",
		"config/routes.rb": `APP::Application.routes.draw do
  # The priority is based upon order of creation:
  # first created -> highest priority.

  # Sample of regular route:
  #   match 'products/:id' => 'catalog#view'
end
`,
		"Gemfile": `source 'http://rubygems.org'

gem 'rails', '3.1.0'

# Bundle edge Rails instead:
# gem 'rails',     :git => 'git://github.com/rails/rails.git'

gem 'sqlite3'

# Gems used only for assets and not required
# in production environments by default.
group :assets do
  gem 'sass-rails', "  ~> 3.1.0"
  gem 'coffee-rails', "~> 3.1.0"
  gem 'uglifier'
end

gem 'jquery-rails'

group :test do
  # Pretty printed test output
  gem 'turn', :require => false
end
`,
		"app/helpers/application_helper.rb":      "module ApplicationHelper\nend\n",
		"app/assets/stylesheets/application.css": "/*\n *= require_self\n *= require_tree .\n*/\n",
		"app/assets/javascripts/application.js":  "// This is a manifest file that'll be compiled into including all the files listed below.\n//\n//= require jquery\n//= require jquery_ujs\n//= require_tree .\n",
		"app/views/layouts/application.html.erb": "<!DOCTYPE html>\n<html>\n<head>\n  <title>APP</title>\n</head>\n<body>\n\n<%= yield %>\n\n</body>\n</html>\n",
	}
	for name, content := range files {
		files[name] = strings.ReplaceAll(content, "APP", module)
	}
	return files
}

const specHelper = `# This file is copied to spec/ when you run 'rails generate rspec:install'
ENV["RAILS_ENV"] ||= 'test'
require File.expand_path("../../config/environment", __FILE__)
require 'rspec/rails'

# Requires supporting ruby files with custom matchers and macros, etc,
# in spec/support/ and its subdirectories.
Dir[Rails.root.join("spec/support/**/*.rb")].each {|f| require f}

RSpec.configure do |config|
  # If you're not using ActiveRecord, or you'd prefer not to run each of your
  # examples within a transaction, remove the following line or assign false
  # instead of true.
  config.fixture_path = "#{::Rails.root}/spec/fixtures"
  config.use_transactional_fixtures = true
end
`
