/*
Package bracket is a template engine compatible with the Handlebars
surface syntax. It compiles text containing interpolation expressions,
block helpers, partials, comments and raw blocks into an abstract syntax
tree, and renders that tree against a hierarchical JSON-like data context
to produce text output.

Basics

A template interpolates values with double braces:

	Hello {{name}}!

and a context

	{"name": "Ada"}

renders to

	Hello Ada!

Block helpers wrap a fragment of the template and decide how many times,
and under what scope, to render it:

	{{#each items}}
		{{@index}}: {{this}}
	{{else}}
		nothing here
	{{/each}}

	{{#if user.active}}
		Welcome back!
	{{else}}
		Please log in.
	{{/if}}

Values are looked up with paths relative to the current scope. A leading
"../" walks up one scope per repetition, "@root" always reaches the
original data regardless of nesting, and "@"-prefixed names reach
per-scope locals such as "@index" inside an each loop.

Partials

A named, separately compiled template can be included at render time:

	{{> user-card person=user}}

and a partial invoked as a block exposes its inner template to the
partial under the special local "@partial-block":

	{{#> layout}}
		page body
	{{/layout}}

Registry and rendering

A Registry owns the set of helpers, partials, and the escape function
used for "{{x}}" ("{{{x}}}" bypasses it). Registries are built up
single-threaded and are read-only, shareable across goroutines, once
rendering begins:

	reg := bracket.NewRegistry()
	reg.RegisterHelper("shout", func(args bracket.HelperArgs) (bracket.Value, error) {
		return bracket.String(strings.ToUpper(args.Positional[0].AsString())), nil
	})

	tpl, err := reg.Compile(bracket.NewSource("greeting", "{{shout name}}"))
	if err != nil {
		// err is a *bracket.Error carrying a source span
	}

	out, err := reg.RenderTemplate(tpl, map[string]any{"name": "ada"})

Errors

Errors are diagnostics carrying a source span and, where useful, a
secondary span (for example the opening tag of a block whose closing tag
doesn't match). Missing data paths are never errors — they resolve to
null — but unknown helpers and unknown partials are, since that is the
only way for the engine to tell a typo apart from data that just isn't
there.

What this package does not do

Bracket never executes arbitrary code embedded in a template, never
mutates the context it is given, and has no notion of template
inheritance beyond partials and partial blocks. The concrete set of
built-in helpers NewRegistry installs is deliberately small; the
filesystem template loader and any HTTP adapter live outside this
package, talking to it only through the Registry and Loader interfaces.
*/
package bracket
