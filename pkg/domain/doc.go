/*
Package domain contains the core models shared by every stage of the domain generator.

It defines what flows through the pipeline: the selection criteria read from the
criteria files, the commands emitted for the settings-database builder, and the
session configuration handed to the builder process. The package is kept free of I/O.

# Key Entities

  - Criterion: A named selection criterion, its inclusiveness and its ordered values.
  - Command: One primitive builder command, an ordered list of string tokens.
  - SessionConfig: The arguments the builder process is started with.
  - Errors: The failure taxonomy (input, rule syntax, rule consistency, launch, builder
    status) and the process exit code each one maps to.
*/
package domain
