package domain

import "errors"

var (
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrCollectionNameTaken = errors.New("a collection with this name already exists")
	ErrLinkNotFound        = errors.New("photo is not in this collection")
	ErrProjectNotFound     = errors.New("project not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrNoFieldsToUpdate    = errors.New("no valid fields provided for update")
	ErrUnauthorized        = errors.New("unauthorized: admin access required")
)

var (
	ErrFileTooLarge     = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedMedia = errors.New("only image uploads are accepted")
)
