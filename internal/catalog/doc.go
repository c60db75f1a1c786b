// Package catalog builds the media catalog written to content.json.
//
// A build runs in two stages per top-level directory. [Scanner] walks the
// tree, classifies files by extension and reads link-files for stream URLs,
// producing a tree of [Node] values. The enrichment stage then maps over the
// flattened tree: thumbnails first, then MIME sniffing of generic files,
// then the optional metadata probe of video and audio. Enrichment is
// best-effort and never fails the build.
//
// Output order is deterministic: directory entries are visited sorted by
// name and categories are serialized in the fixed [naming.Categories] order.
package catalog
