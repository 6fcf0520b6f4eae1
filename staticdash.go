// Package staticdash generates static, navigable dashboard sites from a
// declarative content model. Pages hold an ordered sequence of typed blocks
// (headers, markdown text, plots, tables, downloads, code, nested rows) and a
// Dashboard publishes the page tree either as a multi-page HTML site or as a
// single paginated PDF report.
//
// The model is build-then-publish: construct pages, append blocks, attach the
// pages to a Dashboard, then call Publish or PublishPDF. Publishing is a pure
// function of the current tree state; the only side effects are the files it
// writes. The tree is assumed caller-owned and quiescent during a publish.
package staticdash

// DefaultPageWidth is the pixel width a container renders at when neither it
// nor any ancestor sets an explicit width.
const DefaultPageWidth = 900

// Version of the staticdash library.
const Version = "0.3.0"
