package apiservice

// UploadCompanies uploads a companies file to the admin-only endpoint. The
// file content type is sent as given so tests can probe the format check
// with non-CSV payloads.
func (c *Client) UploadCompanies(fileName, fileContentType string, content []byte, token string) (Response, error) {
	return c.PostMultipart(uploadPath, "file", fileName, fileContentType, content, token)
}
