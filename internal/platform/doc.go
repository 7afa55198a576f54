// Package platform contains OS/platform integration: turning local image
// references (file:// URIs, absolute and Windows drive paths) into paths the
// filesystem can open.
package platform
