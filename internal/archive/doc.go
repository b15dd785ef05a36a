// Package archive aggregates named audio payloads into a single downloadable
// artefact. ZipWriter buffers a flat zip in memory and accepts entries one at a
// time, so the caller can release each payload right after adding it.
// DirWriter writes the same entries as loose files.
package archive
