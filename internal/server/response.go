package server

// Response is the JSON envelope every conversion endpoint returns. Outcomes
// are carried in the status field, not in HTTP status codes: conversion
// failures still answer 200 with status 0 and a message.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	PDF     string `json:"pdf,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// failure builds a status-0 envelope with a message.
func failure(message string) Response {
	return Response{Status: 0, Message: message}
}

// pdfResult builds a status-1 envelope carrying a base64 PDF.
func pdfResult(encoded string) Response {
	return Response{Status: 1, PDF: encoded}
}

// htmlResult builds a status-1 envelope carrying an HTML document.
func htmlResult(content string) Response {
	return Response{Status: 1, HTML: content}
}
