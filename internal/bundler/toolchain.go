package bundler

// Toolchain lists the npm packages the generated configuration and the
// embedded runtime load, plus the webpack CLI packages behind DefaultCommand.
// A project cannot be started or built without them.
var Toolchain = []string{
	"webpack",
	"webpack-cli",
	"webpack-dev-server",
	"html-webpack-plugin",
	"babel-loader",
	"@babel/core",
	"@babel/preset-env",
	"@babel/preset-react",
	"html-loader",
	"markdown-loader",
	"style-loader",
	"css-loader",
	"prop-types",
}

// RuntimePackages are imported by the embedded runtime and installed as the
// presentation's own dependencies.
var RuntimePackages = []string{"react", "react-dom", "spectacle"}
