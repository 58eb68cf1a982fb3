package ir

const Theory = `
# Machine IR Theory

A machine is a set of states connected by rules. A state is either plain or an m-function: a state with parameters, usable only through a call that supplies an argument for every parameter.

## 1. Final and Deferred Nodes
Every action, rule and state reference is either final or deferred.
- **Final**: fully known. Bind and Instantiate return the node unchanged.
- **Deferred**: a template plus a pending context. Bind merges a context into the pending one without looking inside the template. Instantiate forces substitution and returns a final node.

Binding twice and instantiating with the empty context is the same as instantiating once with the merged context, the later context winning on shared names.

## 2. Instantiation
- **Print**: a print of a parameter name looks the name up.
- **Rule**: actions are instantiated, the target is only bound. The next state is computed when the rule is taken, which keeps recursive m-functions finite.
- **Call**: arguments are resolved against the caller's context, then zipped against the callee's parameter names.
- **Placeholder**: a state parameter; it instantiates whatever reference the parameter is bound to.
- **m-function**: sees only its own parameters. Rule keys equal to a symbol parameter are replaced by the argument, so a template can dispatch on what its caller passed. The instance is named after its arguments, e.g. F(_s=9, A=S).

## 3. Dispatch
For the symbol under the head: the exact rule wins; otherwise the default rule runs with the symbol bound under its capture name ("..." when anonymous); otherwise the state goes to REJECT without acting.

## 4. Sentinels
ACCEPT and REJECT are shared by all machines, have no rules and end execution. They are compared by identity.
`
