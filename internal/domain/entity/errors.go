package entity

import "errors"

var (
	// ErrInvalidImage пустое или нераспознаваемое изображение.
	ErrInvalidImage = errors.New("invalid image")

	// ErrNoRegionFound после сегментации не найдено ни одного контура.
	ErrNoRegionFound = errors.New("no color card region found")

	// ErrInvalidGridConfig неположительное число строк/столбцов сетки.
	ErrInvalidGridConfig = errors.New("invalid grid config")

	// ErrNoChessboardFound ни на одном кадре не найдены углы шахматной доски.
	ErrNoChessboardFound = errors.New("no chessboard corners found")

	// ErrUserNotFound пользователь ещё не писал боту.
	ErrUserNotFound = errors.New("user not found")
)
