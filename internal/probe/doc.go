// Package probe reads optional media metadata (duration, pixel dimensions,
// bitrate) for video and audio files.
//
// [FFprobe] runs an external ffprobe command and parses its JSON with
// jsonparser; [Matroska] reads the EBML header of .mkv/.webm/.mka files
// in-process. [Chain] tries probers in order. Every failure is reported to
// the caller, which treats it as "no metadata" and carries on.
package probe
