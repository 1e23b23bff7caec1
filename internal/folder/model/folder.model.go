package model

type Folder struct {
	ID         int64  `json:"id"`
	FolderName string `json:"folder_name"`
}

// CreateFolderRequest is the POST body. ID is optional; when set it is used
// as the primary key instead of a generated one.
type CreateFolderRequest struct {
	ID         *int64 `json:"id"`
	FolderName string `json:"folder_name"`
}

type UpdateFolderRequest struct {
	FolderName *string `json:"folder_name"`
}

type NewFolder struct {
	ID         *int64
	FolderName string
}

type FolderPatch struct {
	FolderName *string
}
