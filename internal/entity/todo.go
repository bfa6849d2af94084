package entity

type Todo struct {
	TaskID          int    `json:"task_id"`
	TaskName        string `json:"task_name"`
	TaskDescription string `json:"task_description"`
	CompleteStatus  bool   `json:"complete_status"`
}

/*
Mysql Schema:

CREATE TABLE todos (
	task_id INT AUTO_INCREMENT PRIMARY KEY,
	task_name VARCHAR(100) NOT NULL,
	task_description VARCHAR(100),
	complete_status BOOLEAN NOT NULL DEFAULT FALSE
);
*/
